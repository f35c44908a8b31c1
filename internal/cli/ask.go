package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/core"
	"github.com/Rorical/RoriSQL/internal/models"
	"github.com/Rorical/RoriSQL/ui/components"
)

type Options struct {
	Generator backend.Generator
	Question  string
	Output    OutputMode
	Stdout    io.Writer
	Stderr    io.Writer
	// Interactive enables the spinner and SQL highlighting
	Interactive bool
	Logger      *slog.Logger
}

type jsonResult struct {
	Question string   `json:"question"`
	SQL      string   `json:"sql"`
	Columns  []string `json:"columns,omitempty"`
	Rows     [][]any  `json:"rows,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Run submits one question and prints the outcome, returning the process exit code
func Run(ctx context.Context, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if err := backend.Validate(opts.Question); err != nil {
		fmt.Fprintln(opts.Stderr, backend.UserMessage(err))
		return ExitInvalid
	}
	if opts.Generator == nil {
		fmt.Fprintln(opts.Stderr, "Generator not configured")
		return ExitFailed
	}

	var s *spinner.Spinner
	if opts.Interactive {
		s = spinner.New(
			spinner.CharSets[14],
			100*time.Millisecond,
			spinner.WithHiddenCursor(true),
			spinner.WithWriter(opts.Stderr),
		)
		s.Suffix = " Generating SQL..."
		s.Start()
	}

	start := time.Now()
	form, err := core.RunOnce(ctx, opts.Generator, opts.Question)
	if s != nil {
		s.Stop()
	}
	opts.Logger.Debug("question resolved", "phase", form.Phase.String(), "duration", time.Since(start))

	if err != nil && !errors.As(err, new(*backend.ServiceError)) {
		opts.Logger.Warn("generation failed", "error", err)
	}

	switch opts.Output {
	case OutputJSON:
		if err := writeJSON(opts.Stdout, form); err != nil {
			fmt.Fprintf(opts.Stderr, "write output: %v\n", err)
			return ExitFailed
		}
	case OutputCSV:
		writeCSV(opts.Stdout, opts.Stderr, form)
	default:
		writeTable(opts.Stdout, form, opts.Interactive)
	}

	if form.Error != "" {
		if opts.Output != OutputJSON {
			fmt.Fprintf(opts.Stderr, "Error: %s\n", form.Error)
		}
		return ExitFailed
	}
	return ExitOK
}

func writeJSON(w io.Writer, form models.FormState) error {
	res := jsonResult{
		Question: form.Question,
		SQL:      form.SQLQuery,
		Error:    form.Error,
	}
	if form.Phase == models.SuccessWithResult {
		res.Columns = form.Columns
		res.Rows = form.Rows
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeTable(w io.Writer, form models.FormState, highlight bool) {
	if form.SQLQuery != "" {
		fmt.Fprintln(w, "Generated SQL Query:")
		sql := form.SQLQuery
		if highlight {
			sql = components.HighlightSQL(sql)
		}
		fmt.Fprintln(w, sql)
	}
	if !form.HasTable() {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Query Result:")
	newResultWriter(w, form).Render()
	fmt.Fprintf(w, "(%s %s)\n", humanize.Comma(int64(len(form.Rows))), plural(len(form.Rows), "row"))
}

func writeCSV(w, stderr io.Writer, form models.FormState) {
	if !form.HasTable() {
		if form.SQLQuery != "" {
			fmt.Fprintln(stderr, "No result table; generated SQL:")
			fmt.Fprintln(stderr, form.SQLQuery)
		}
		return
	}
	newResultWriter(w, form).RenderCSV()
}

func newResultWriter(w io.Writer, form models.FormState) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// column names are shown as returned
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(form.Columns))
	for i, c := range form.Columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, cells := range components.FormatRows(form.Rows) {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}
	return t
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
