package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/models"
)

// QueryState holds the form state shared between the event loop and request goroutines.
// Every submission gets a token; results carrying an older token are dropped.
type QueryState struct {
	mu              sync.RWMutex
	form            models.FormState
	token           string
	programMessages []models.Message
}

func NewQueryState() *QueryState {
	return &QueryState{
		form:            models.FormState{Phase: models.Idle},
		programMessages: make([]models.Message, 0),
	}
}

// StartSubmission resets the result fields, marks the form loading and returns the
// token for this submission.
func (qs *QueryState) StartSubmission(question string) string {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qs.token = uuid.NewString()
	qs.form = models.FormState{
		Question: question,
		Loading:  true,
		Phase:    models.Loading,
	}
	return qs.token
}

// FinishWithResponse applies a backend response and returns the phase it set. ok is
// false if token is stale.
func (qs *QueryState) FinishWithResponse(token string, resp *backend.Response) (phase models.Phase, ok bool) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	if token != qs.token {
		return qs.form.Phase, false
	}

	qs.form.Loading = false
	switch {
	case resp == nil:
		qs.form.Error = backend.TransportErrorMessage
		qs.form.Phase = models.Failed
	case resp.Error != "":
		qs.form.Error = resp.Error
		qs.form.Phase = models.Failed
	case resp.HasResult():
		qs.form.SQLQuery = resp.SQL
		qs.form.Columns = resp.Columns
		qs.form.Rows = resp.Rows
		qs.form.Phase = models.SuccessWithResult
	default:
		qs.form.SQLQuery = resp.SQL
		qs.form.Phase = models.SuccessSQLOnly
	}
	return qs.form.Phase, true
}

// FinishWithError records a failed submission. It returns false if token is stale.
func (qs *QueryState) FinishWithError(token string, err error) bool {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	if token != qs.token {
		return false
	}

	qs.form.Loading = false
	qs.form.Error = backend.UserMessage(err)
	qs.form.Phase = models.Failed
	return true
}

// Snapshot returns a copy of the current form state
func (qs *QueryState) Snapshot() models.FormState {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return qs.form.Clone()
}

func (qs *QueryState) IsLoading() bool {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return qs.form.Loading
}

func (qs *QueryState) AddProgramMessage(content string) {
	qs.addMessage(content, models.Program)
}

func (qs *QueryState) AddHint(content string) {
	qs.addMessage(content, models.Hint)
}

func (qs *QueryState) addMessage(content string, t models.MessageType) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.programMessages = append(qs.programMessages, models.Message{Content: content, Type: t})
}

func (qs *QueryState) GetMessages() []models.Message {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	result := make([]models.Message, len(qs.programMessages))
	copy(result, qs.programMessages)
	return result
}
