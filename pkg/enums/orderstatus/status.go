package orderstatus

type Status string

const (
	Pending    Status = "PENDING"
	Preparing  Status = "PREPARING"
	Delivering Status = "DELIVERING"
	Completed  Status = "COMPLETED"
	Cancelled  Status = "CANCELLED"
)

var All = []Status{Pending, Preparing, Delivering, Completed, Cancelled}

func (s Status) Valid() bool {
	for _, v := range All {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition encodes the back-office lifecycle. Cancellation is only
// allowed while the order is still pending.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case Pending:
		return to == Preparing || to == Cancelled
	case Preparing:
		return to == Delivering || to == Completed
	case Delivering:
		return to == Completed
	default:
		return false
	}
}
