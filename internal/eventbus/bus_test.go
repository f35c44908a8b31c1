package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToCoreDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SubmitQuestionEvent{Question: "show all users"}))

	select {
	case ev := <-eb.UIToCore():
		submit, ok := ev.(SubmitQuestionEvent)
		require.True(t, ok)
		assert.Equal(t, "show all users", submit.Question)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestFullChannelOpensCircuit(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(err EventBusError) { reported = append(reported, err) })

	for i := 0; i < cap(eb.coreToUI); i++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{}))
	}
	for i := 0; i < 5; i++ {
		assert.Error(t, eb.SendToUI(StateUpdateEvent{}))
	}

	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrCircuitOpen)
	assert.Len(t, reported, 6)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestCircuitBreakerHalfOpensAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(SubmitQuestionEvent{}), ErrBusClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrBusClosed)
}
