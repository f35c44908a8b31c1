package components

import (
	"strings"

	"github.com/Rorical/RoriSQL/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}

func RenderError(message string) string {
	if message == "" {
		return ""
	}
	return styles.ErrorStyle().Render(message) + "\n"
}

func RenderWarning(message string, width int) string {
	if message == "" {
		return ""
	}
	return styles.WarningStyle(width).Render(message+"\n\npress any key") + "\n"
}
