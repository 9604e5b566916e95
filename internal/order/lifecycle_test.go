package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCompleted))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))

	assert.False(t, CanTransition(StatusPending, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCompleted))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" PENDING ")
	assert.True(t, ok)
	assert.Equal(t, StatusPending, s)

	_, ok = ParseStatus("done")
	assert.False(t, ok)
}

func TestOrder_Change(t *testing.T) {
	o := Order{TotalPrice: 80000, PaymentAmount: 100000}
	assert.Equal(t, int64(20000), o.Change())
}
