package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/RoriSQL/internal/models"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrBusClosed   = errors.New("event bus is closed")
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitQuestionEvent - UI asks core to generate SQL for a question
type SubmitQuestionEvent struct {
	Question string
}

func (e SubmitQuestionEvent) UIEvent() {}

// StateUpdateEvent - Core pushes the form state to UI
type StateUpdateEvent struct {
	Messages []models.Message // Only banner lines not sent before
	Form     models.FormState
}

func (e StateUpdateEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker stops sends after repeated failures until resetTimeout has passed
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("UI to Core channel is full")
		eb.reportError("SendToCore", err)
		return err
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("Core to UI channel is full")
		eb.reportError("SendToUI", err)
		return err
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels; later sends return ErrBusClosed
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
