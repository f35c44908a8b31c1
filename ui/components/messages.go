package components

import (
	"strings"

	"github.com/Rorical/RoriSQL/internal/models"
	"github.com/Rorical/RoriSQL/ui/styles"
)

func RenderHeader(title string) string {
	return styles.TitleStyle().Render(title) + "\n\n"
}

func RenderMessages(messages []models.Message) string {
	var b strings.Builder

	programStyle := styles.SystemStyle()
	hintStyle := styles.HintStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n")
		case models.Hint:
			b.WriteString(hintStyle.Render(msg.Content) + "\n")
		}
	}
	if len(messages) > 0 {
		b.WriteString("\n")
	}

	return b.String()
}
