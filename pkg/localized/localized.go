// Package localized holds multilingual text as a single canonical shape.
// Upstream clients historically sent names either as a plain string or as an
// {en,ar,he} object; both forms are accepted at the JSON boundary and
// normalized here, so code past the boundary never checks shapes again.
package localized

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type Text struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
	He string `json:"he,omitempty"`
}

// FromString wraps an already-resolved plain string.
func FromString(s string) Text { return Text{En: s} }

// Resolve picks the display string: en, then ar, then he, then "".
// Resolve(FromString(x)) == x, so applying the coercion twice is a no-op.
func (t Text) Resolve() string {
	if t.En != "" {
		return t.En
	}
	if t.Ar != "" {
		return t.Ar
	}
	return t.He
}

func (t Text) IsZero() bool { return t.En == "" && t.Ar == "" && t.He == "" }

// UnmarshalJSON accepts either "name" or {"en":..,"ar":..,"he":..}.
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = FromString(s)
		return nil
	}
	type plain Text
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Text(p)
	return nil
}

// Value / Scan store the object as a JSON column.

func (t Text) Value() (driver.Value, error) {
	b, err := json.Marshal(struct {
		En string `json:"en"`
		Ar string `json:"ar,omitempty"`
		He string `json:"he,omitempty"`
	}(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Text{}
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("localized: cannot scan %T", src)
	}
}

var ErrEmpty = errors.New("localized: empty text")

// Validate is used by admin create paths that require at least one locale.
func (t Text) Validate() error {
	if t.IsZero() {
		return ErrEmpty
	}
	return nil
}
