package models

// Phase is the lifecycle position of the query form
type Phase int

const (
	Idle Phase = iota
	Loading
	SuccessWithResult
	SuccessSQLOnly
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case SuccessWithResult:
		return "success"
	case SuccessSQLOnly:
		return "success-sql-only"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// FormState is the state of the last submission as seen by the view
type FormState struct {
	Question string   // Question that produced this state
	SQLQuery string   // Generated SQL, empty if none yet
	Columns  []string // Header labels for Rows
	Rows     [][]any  // Result rows
	Loading  bool     // True while a request is in flight
	Error    string   // Error shown inline, empty if none
	Phase    Phase
}

// HasTable reports whether the result table can be rendered: both columns and rows
// are non-empty and every row has one cell per column.
func (f FormState) HasTable() bool {
	if len(f.Columns) == 0 || len(f.Rows) == 0 {
		return false
	}
	for _, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no slices with f
func (f FormState) Clone() FormState {
	out := f
	if f.Columns != nil {
		out.Columns = append([]string(nil), f.Columns...)
	}
	if f.Rows != nil {
		out.Rows = make([][]any, len(f.Rows))
		for i, row := range f.Rows {
			out.Rows[i] = append([]any(nil), row...)
		}
	}
	return out
}
