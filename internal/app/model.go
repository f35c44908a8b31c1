package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSQL/internal/update"
	"github.com/Rorical/RoriSQL/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
		m.input.Focus(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	consumed, cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.input.Value(), eventBus, m.ready)
	if consumed {
		return m, cmd
	}

	// Everything else edits the question
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(cmd, inputCmd)
}

func (m *AppModel) View() string {
	var b strings.Builder
	form := m.appModel.Form

	b.WriteString(components.RenderHeader(Title))
	b.WriteString(components.RenderMessages(m.appModel.Messages))
	b.WriteString(components.RenderInput(m.input.View(), m.appModel.Width))
	b.WriteString(components.RenderButton(form.Loading))
	b.WriteString(components.RenderWarning(m.appModel.PendingWarning, m.appModel.Width))
	b.WriteString(components.RenderSQL(form.SQLQuery, m.highlight))
	b.WriteString(components.RenderResultTable(form))
	b.WriteString(components.RenderError(form.Error))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, form.Loading, m.appModel.LoadingDots, m.appModel.Width))

	return b.String()
}
