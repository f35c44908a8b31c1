package components

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Rorical/RoriSQL/internal/models"
	"github.com/Rorical/RoriSQL/ui/styles"
)

// FormatCell renders a JSON cell value as text
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatRows converts every cell of rows to text
func FormatRows(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = FormatCell(cell)
		}
	}
	return out
}

// RenderResultTable renders the result section, or nothing when the form has no table
func RenderResultTable(form models.FormState) string {
	if !form.HasTable() {
		return ""
	}

	headerStyle := styles.TableHeaderStyle()
	cellStyle := styles.TableCellStyle()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorderStyle()).
		Headers(form.Columns...).
		Rows(FormatRows(form.Rows)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return styles.SectionStyle().Render("Query Result:") + "\n" + t.Render() + "\n"
}
