package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/models"
)

func TestStartSubmissionClearsPreviousResult(t *testing.T) {
	qs := NewQueryState()
	token := qs.StartSubmission("first")
	_, ok := qs.FinishWithResponse(token, &backend.Response{
		SQL:     "SELECT 1",
		Columns: []string{"a"},
		Rows:    [][]any{{1}},
	})
	require.True(t, ok)

	qs.StartSubmission("second")
	form := qs.Snapshot()

	assert.True(t, form.Loading)
	assert.Equal(t, models.Loading, form.Phase)
	assert.Equal(t, "second", form.Question)
	assert.Empty(t, form.SQLQuery)
	assert.Empty(t, form.Columns)
	assert.Empty(t, form.Rows)
	assert.Empty(t, form.Error)
}

func TestFinishWithResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *backend.Response
		wantPhase models.Phase
		wantSQL   string
		wantError string
		wantTable bool
	}{
		{
			name: "sql with table",
			resp: &backend.Response{
				SQL:     "SELECT * FROM users",
				Columns: []string{"id", "name"},
				Rows:    [][]any{{1, "Alice"}, {2, "Bob"}},
			},
			wantPhase: models.SuccessWithResult,
			wantSQL:   "SELECT * FROM users",
			wantTable: true,
		},
		{
			name:      "sql only",
			resp:      &backend.Response{SQL: "SELECT 1"},
			wantPhase: models.SuccessSQLOnly,
			wantSQL:   "SELECT 1",
		},
		{
			name:      "columns without rows",
			resp:      &backend.Response{SQL: "SELECT 1", Columns: []string{"a"}},
			wantPhase: models.SuccessSQLOnly,
			wantSQL:   "SELECT 1",
		},
		{
			name:      "missing sql defaults to empty",
			resp:      &backend.Response{},
			wantPhase: models.SuccessSQLOnly,
		},
		{
			name:      "error field wins",
			resp:      &backend.Response{SQL: "SELECT", Error: "Could not parse question"},
			wantPhase: models.Failed,
			wantError: "Could not parse question",
		},
		{
			name: "mismatched rows store data but render no table",
			resp: &backend.Response{
				SQL:     "SELECT 1",
				Columns: []string{"a", "b"},
				Rows:    [][]any{{1}},
			},
			wantPhase: models.SuccessWithResult,
			wantSQL:   "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := NewQueryState()
			token := qs.StartSubmission("q")
			phase, ok := qs.FinishWithResponse(token, tt.resp)
			require.True(t, ok)

			form := qs.Snapshot()
			assert.Equal(t, tt.wantPhase, phase)
			assert.False(t, form.Loading)
			assert.Equal(t, tt.wantPhase, form.Phase)
			assert.Equal(t, tt.wantSQL, form.SQLQuery)
			assert.Equal(t, tt.wantError, form.Error)
			assert.Equal(t, tt.wantTable, form.HasTable())
		})
	}
}

func TestFinishWithError(t *testing.T) {
	qs := NewQueryState()
	token := qs.StartSubmission("xyz")
	require.True(t, qs.FinishWithError(token, &backend.ServiceError{Message: "Could not parse question"}))

	form := qs.Snapshot()
	assert.False(t, form.Loading)
	assert.Equal(t, models.Failed, form.Phase)
	assert.Equal(t, "Could not parse question", form.Error)
	assert.Empty(t, form.SQLQuery)
	assert.False(t, form.HasTable())

	token = qs.StartSubmission("show all users")
	require.True(t, qs.FinishWithError(token, &backend.TransportError{Op: "send request", Err: errors.New("connection refused")}))
	assert.Equal(t, backend.TransportErrorMessage, qs.Snapshot().Error)
}

func TestStaleTokenIsDropped(t *testing.T) {
	qs := NewQueryState()
	first := qs.StartSubmission("first")
	second := qs.StartSubmission("second")

	phase, ok := qs.FinishWithResponse(first, &backend.Response{SQL: "SELECT 'first'"})
	assert.False(t, ok)
	assert.Equal(t, models.Loading, phase)
	assert.True(t, qs.IsLoading())

	phase, ok = qs.FinishWithResponse(second, &backend.Response{SQL: "SELECT 'second'"})
	assert.True(t, ok)
	assert.Equal(t, models.SuccessSQLOnly, phase)
	assert.False(t, qs.FinishWithError(first, errors.New("late failure")))

	form := qs.Snapshot()
	assert.Equal(t, "SELECT 'second'", form.SQLQuery)
	assert.Empty(t, form.Error)
}

func TestSnapshotIsACopy(t *testing.T) {
	qs := NewQueryState()
	token := qs.StartSubmission("q")
	_, _ = qs.FinishWithResponse(token, &backend.Response{Columns: []string{"a"}, Rows: [][]any{{1}}})

	snap := qs.Snapshot()
	snap.Columns[0] = "changed"
	assert.Equal(t, "a", qs.Snapshot().Columns[0])
}
