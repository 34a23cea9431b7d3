// Package ingredientrole models how an ingredient participates in a meal.
// Meal authoring cycles each ingredient through the three roles explicitly
// instead of inferring state from presence in a map.
package ingredientrole

type Role string

const (
	// NotIncluded: the ingredient has no link to the meal.
	NotIncluded Role = "NOT_INCLUDED"
	// Default: included in the base price, removable by the customer.
	Default Role = "DEFAULT"
	// Extra: not included, addable for an additional price.
	Extra Role = "EXTRA"
)

var All = []Role{NotIncluded, Default, Extra}

func (r Role) Valid() bool {
	for _, v := range All {
		if r == v {
			return true
		}
	}
	return false
}

// Next advances the authoring toggle: none -> default -> extra -> none.
// Unknown values reset to NotIncluded.
func (r Role) Next() Role {
	switch r {
	case NotIncluded:
		return Default
	case Default:
		return Extra
	default:
		return NotIncluded
	}
}
