package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/eventbus"
	"github.com/Rorical/RoriSQL/internal/models"
)

// HandleKeyMsgWithEventBus handles keys that act on the form. It reports whether the key
// was consumed; unconsumed keys edit the question.
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, question string, eb *eventbus.EventBus, ready bool) (bool, tea.Cmd) {
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return true, tea.Quit
	}

	// The warning is modal: any key dismisses it and does nothing else
	if appModel.PendingWarning != "" {
		appModel.PendingWarning = ""
		return true, nil
	}

	if keyMsg.String() != "enter" {
		return false, nil
	}

	// Submit is disabled while a request is in flight
	if appModel.Form.Loading {
		return true, nil
	}

	if err := backend.Validate(question); err != nil {
		appModel.PendingWarning = backend.UserMessage(err)
		return true, nil
	}

	if !ready {
		appModel.Status = "Generator not configured"
		return true, nil
	}

	if err := eb.SendToCore(eventbus.SubmitQuestionEvent{Question: question}); err != nil {
		appModel.Status = "Error submitting question: " + err.Error()
		return true, nil
	}

	// Mirror the reset core is about to push so the button disables immediately
	appModel.Form = models.FormState{Question: question, Loading: true, Phase: models.Loading}
	appModel.Status = "Generating"
	return true, nil
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Messages = append(appModel.Messages, event.Messages...)
		appModel.Form = event.Form

		switch event.Form.Phase {
		case models.Loading:
			appModel.Status = "Generating"
		case models.Failed:
			appModel.Status = "Error"
		case models.SuccessWithResult, models.SuccessSQLOnly:
			appModel.Status = "Done"
		default:
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Form.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
