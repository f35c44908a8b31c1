package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSQL/internal/eventbus"
	"github.com/Rorical/RoriSQL/internal/models"
)

// HandleUpdateWithEventBus routes a message; consumed is false for keys that belong to
// the question input.
func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, question string, eb *eventbus.EventBus, ready bool) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, msg, question, eb, ready)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return false, nil
	case TickMsg:
		return true, HandleTickMsg(appModel)
	case CoreEventMsg:
		return true, HandleCoreEvent(appModel, msg)
	}
	return false, nil
}
