package app

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/config"
	"github.com/Rorical/RoriSQL/internal/core"
	"github.com/Rorical/RoriSQL/internal/dispatcher"
	"github.com/Rorical/RoriSQL/internal/eventbus"
	"github.com/Rorical/RoriSQL/internal/generator"
	"github.com/Rorical/RoriSQL/internal/models"
)

const Title = "SQL Query Generator"

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.QueryService
	model      *AppModel
	logger     *slog.Logger
}

type AppModel struct {
	appModel   models.AppModel
	input      textarea.Model
	dispatcher *dispatcher.EventDispatcher
	ready      bool
	highlight  bool
}

// NewApplication wires the UI to a generator built from cfg. An unusable profile still
// yields a running UI that explains how to configure it.
func NewApplication(cfg *config.Config, logger *slog.Logger, highlight bool) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.Error("event bus error", "operation", err.Operation, "error", err.Err)
	})

	disp := dispatcher.NewEventDispatcher(eb)

	var gen backend.Generator
	banner := core.Banner{Profile: cfg.ActiveProfile, Generator: cfg.GetGenerator()}
	if cfg.IsValid() {
		g, target, err := generator.FromConfig(cfg, logger)
		if err != nil {
			logger.Warn("generator unavailable", "profile", cfg.ActiveProfile, "error", err)
		} else {
			gen = g
			banner.Target = target.Endpoint
		}
	}

	service := core.NewQueryService(gen, eb, logger, banner)

	model := &AppModel{
		appModel:   createInitialAppModel(service),
		input:      newQuestionInput(),
		dispatcher: disp,
		ready:      service.IsReady(),
		highlight:  highlight,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		logger:     logger,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()
	app.logger.Info("ui started", "profile", app.config.ActiveProfile)

	p := tea.NewProgram(app.model)
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(service *core.QueryService) models.AppModel {
	// No initial messages in UI - they come from core as single source of truth
	return models.AppModel{
		Messages:     make([]models.Message, 0),
		Form:         models.FormState{Phase: models.Idle},
		Status:       "Ready",
		ServiceReady: service.IsReady(),
	}
}

func newQuestionInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Enter your question..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(4)
	// enter submits the form, so newlines move to ctrl+j
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))
	ta.Focus()
	return ta
}
