package components

import (
	"bytes"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	chromastyles "github.com/alecthomas/chroma/styles"

	"github.com/Rorical/RoriSQL/ui/styles"
)

// HighlightSQL colours sql for a 256-colour terminal, returning it unchanged on failure
func HighlightSQL(sql string) string {
	lexer := lexers.Get("sql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var buf bytes.Buffer
	if err := formatters.Get("terminal256").Format(&buf, chromastyles.Native, iterator); err != nil {
		return sql
	}
	return buf.String()
}

// RenderSQL renders the generated query section; it is empty when there is no query
func RenderSQL(sql string, highlight bool) string {
	if sql == "" {
		return ""
	}
	body := sql
	if highlight {
		body = HighlightSQL(sql)
	}
	return styles.SectionStyle().Render("Generated SQL Query:") + "\n" +
		styles.SQLBlockStyle().Render(body) + "\n"
}
