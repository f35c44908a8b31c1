package mockserver

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Rorical/RoriSQL/internal/backend"
)

// Fixtures maps question text to the canned response for it
type Fixtures map[string]backend.Response

// LoadFixtures reads a JSON object of question -> response
func LoadFixtures(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures Fixtures
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return fixtures, nil
}

// Lookup matches questions ignoring surrounding whitespace
func (f Fixtures) Lookup(question string) (backend.Response, bool) {
	if resp, ok := f[question]; ok {
		return resp, true
	}
	resp, ok := f[strings.TrimSpace(question)]
	return resp, ok
}

// DefaultFixtures covers each outcome the client distinguishes
func DefaultFixtures() Fixtures {
	return Fixtures{
		"Show me all users": {
			SQL:     "SELECT id, name FROM users",
			Columns: []string{"id", "name"},
			Rows:    [][]any{{1, "Alice"}, {2, "Bob"}},
		},
		"Count the orders": {
			SQL: "SELECT COUNT(*) FROM orders",
		},
		"Show the invoices": {
			Error: "Table not found",
		},
	}
}
