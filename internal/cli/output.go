package cli

import (
	"github.com/thediveo/enumflag/v2"
)

type OutputMode enumflag.Flag

const (
	OutputTable OutputMode = iota
	OutputJSON
	OutputCSV
)

var OutputModeIds = map[OutputMode][]string{
	OutputTable: {"table"},
	OutputJSON:  {"json"},
	OutputCSV:   {"csv"},
}

// FlagValues lists the accepted --output names in declaration order
func FlagValues() []string {
	values := make([]string, 0, len(OutputModeIds))
	for mode := OutputTable; mode <= OutputCSV; mode++ {
		values = append(values, OutputModeIds[mode]...)
	}
	return values
}

const (
	ExitOK      = 0
	ExitFailed  = 1
	ExitInvalid = 2
)
