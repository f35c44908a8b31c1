package components

import (
	"github.com/Rorical/RoriSQL/ui/styles"
)

// RenderInput frames the question textarea view
func RenderInput(view string, width int) string {
	return styles.InputStyle(width).Render(view) + "\n"
}

func RenderButton(loading bool) string {
	if loading {
		return styles.ButtonStyle(false).Render("Generating...") + "\n"
	}
	return styles.ButtonStyle(true).Render("Generate SQL") + "\n"
}
