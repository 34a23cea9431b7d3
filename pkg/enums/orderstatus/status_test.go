package orderstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		Pending:    {Preparing, Cancelled},
		Preparing:  {Delivering, Completed},
		Delivering: {Completed},
		Completed:  {},
		Cancelled:  {},
	}

	for from, tos := range allowed {
		ok := map[Status]bool{}
		for _, to := range tos {
			ok[to] = true
		}
		for _, to := range All {
			assert.Equal(t, ok[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesStick(t *testing.T) {
	for _, from := range []Status{Completed, Cancelled} {
		for _, to := range All {
			assert.False(t, from.CanTransition(to))
		}
	}
}
