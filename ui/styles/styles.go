package styles

import "github.com/charmbracelet/lipgloss"

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 1)
}

func SystemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2)
}

func HintStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 2)
}

func InputStyle(width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style
}

func ButtonStyle(enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1)
	if enabled {
		return style.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)
	}
	return style.
		Foreground(lipgloss.Color("243")).
		Background(lipgloss.Color("237"))
}

func SectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		MarginTop(1).
		Padding(0, 1)
}

func SQLBlockStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(1, 2).
		MarginLeft(1)
}

func TableBorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
}

func TableHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)
}

func TableCellStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		MarginTop(1).
		Padding(0, 1)
}

func WarningStyle(width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Padding(1, 4).
		Align(lipgloss.Center)
	if width > 8 {
		style = style.Width(width / 2)
	}
	return style
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}
