// Package payment holds the payment method and status enums.
package payment

type Method string

const (
	Cash        Method = "CASH"
	Card        Method = "CARD"
	MobileMoney Method = "MOBILE_MONEY"
)

var Methods = []Method{Cash, Card, MobileMoney}

func (m Method) Valid() bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

// Online reports whether the method requires pre-payment before fulfilment.
func (m Method) Online() bool { return m == Card || m == MobileMoney }

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)
