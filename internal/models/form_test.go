package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormStateHasTable(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]any
		want    bool
	}{
		{
			name:    "matching shape",
			columns: []string{"id", "name"},
			rows:    [][]any{{1, "Alice"}, {2, "Bob"}},
			want:    true,
		},
		{
			name: "no columns",
			rows: [][]any{{1}},
		},
		{
			name:    "no rows",
			columns: []string{"id"},
			rows:    [][]any{},
		},
		{
			name:    "short row",
			columns: []string{"id", "name"},
			rows:    [][]any{{1, "Alice"}, {2}},
		},
		{
			name:    "long row",
			columns: []string{"id"},
			rows:    [][]any{{1, "extra"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FormState{Columns: tt.columns, Rows: tt.rows}
			assert.Equal(t, tt.want, f.HasTable())
		})
	}
}

func TestFormStateCloneIsIndependent(t *testing.T) {
	f := FormState{
		SQLQuery: "SELECT 1",
		Columns:  []string{"a"},
		Rows:     [][]any{{1}},
	}
	c := f.Clone()
	c.Columns[0] = "b"
	c.Rows[0][0] = 2

	assert.Equal(t, "a", f.Columns[0])
	assert.Equal(t, 1, f.Rows[0][0])
	assert.Equal(t, "SELECT 1", c.SQLQuery)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "success-sql-only", SuccessSQLOnly.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
