package ordertype

type Type string

const (
	Delivery Type = "DELIVERY"
	DineIn   Type = "DINE_IN"
	TakeAway Type = "TAKE_AWAY"
)

var All = []Type{Delivery, DineIn, TakeAway}

func (t Type) Valid() bool {
	for _, v := range All {
		if t == v {
			return true
		}
	}
	return false
}
