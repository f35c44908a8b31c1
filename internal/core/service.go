package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/eventbus"
	"github.com/Rorical/RoriSQL/internal/models"
)

// Banner describes the active profile for the welcome lines
type Banner struct {
	Profile   string
	Target    string
	Generator string
}

type QueryService struct {
	generator     backend.Generator
	state         *QueryState
	eventBus      *eventbus.EventBus
	logger        *slog.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	inflight      sync.WaitGroup
	sendMu        sync.Mutex
	lastSentCount int // Track how many banner lines we've sent to UI
}

// NewQueryService creates a QueryService even without a generator so the UI can still
// show its state and explain how to configure one.
func NewQueryService(gen backend.Generator, eb *eventbus.EventBus, logger *slog.Logger, banner Banner) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	service := &QueryService{
		generator: gen, // May be nil if config invalid
		state:     NewQueryState(),
		eventBus:  eb,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	service.addWelcomeMessages(banner)

	return service
}

// Start runs the core logic in a goroutine
func (qs *QueryService) Start() {
	qs.pushStateToUI()
	go qs.eventLoop()
}

// Stop cancels in-flight requests and waits for them to settle
func (qs *QueryService) Stop() {
	qs.cancel()
	qs.inflight.Wait()
}

func (qs *QueryService) IsReady() bool {
	return qs.generator != nil
}

// State exposes the shared state; callers must treat it as read-only
func (qs *QueryService) State() *QueryState {
	return qs.state
}

func (qs *QueryService) eventLoop() {
	for {
		select {
		case <-qs.ctx.Done():
			return
		case event, ok := <-qs.eventBus.UIToCore():
			if !ok {
				return
			}
			qs.handleUIEvent(event)
		}
	}
}

func (qs *QueryService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitQuestionEvent:
		if err := qs.Submit(e.Question); err != nil {
			qs.logger.Warn("submission rejected", "error", err)
		}
	}
}

// Submit starts a submission and returns once the loading state is pushed. The
// request itself runs on its own goroutine.
func (qs *QueryService) Submit(question string) error {
	if err := backend.Validate(question); err != nil {
		return err
	}
	if qs.generator == nil {
		return fmt.Errorf("no generator configured")
	}

	if qs.state.IsLoading() {
		qs.logger.Debug("submission overlaps an in-flight request; the older response will be dropped")
	}
	token := qs.state.StartSubmission(question)
	qs.logger.Info("question submitted", "token", token, "question", question)
	qs.pushStateToUI()

	qs.inflight.Add(1)
	go func() {
		defer qs.inflight.Done()
		qs.runSubmission(token, question)
	}()
	return nil
}

func (qs *QueryService) runSubmission(token, question string) {
	resp, err := qs.generator.Generate(qs.ctx, question)

	var applied bool
	if err != nil {
		applied = qs.state.FinishWithError(token, err)
		qs.logger.Info("submission failed", "token", token, "error", err)
	} else {
		var phase models.Phase
		phase, applied = qs.state.FinishWithResponse(token, resp)
		if applied {
			qs.logger.Info("submission finished", "token", token, "phase", phase.String())
		}
	}

	if !applied {
		qs.logger.Debug("dropped stale response", "token", token)
		return
	}
	qs.pushStateToUI()
}

func (qs *QueryService) pushStateToUI() {
	qs.sendMu.Lock()
	defer qs.sendMu.Unlock()

	allMessages := qs.state.GetMessages()

	// Only send new banner lines
	newMessages := allMessages[qs.lastSentCount:]
	qs.lastSentCount = len(allMessages)

	if err := qs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages: newMessages,
		Form:     qs.state.Snapshot(),
	}); err != nil {
		qs.logger.Error("failed to push state to UI", "error", err)
	}
}

func (qs *QueryService) addWelcomeMessages(b Banner) {
	qs.state.AddProgramMessage("-- RORISQL --")

	if qs.generator != nil {
		qs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [OK]", b.Profile))
		qs.state.AddHint(fmt.Sprintf("Generator: %s (%s)", b.Generator, b.Target))
	} else {
		qs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", b.Profile))
		qs.state.AddHint("Configure your profile to start:")
		qs.state.AddHint("• Run: rorisql profile add <name>")
		qs.state.AddHint("• Or edit: ~/.rorisql/config.json")
	}

	qs.state.AddHint("Enter to generate, Ctrl+J for a new line, Esc or Ctrl+C to exit")
}

// RunOnce performs a single submission without the event bus and returns the resolved
// form state together with the classified error, if any.
func RunOnce(ctx context.Context, gen backend.Generator, question string) (models.FormState, error) {
	if err := backend.Validate(question); err != nil {
		return models.FormState{Question: question, Phase: models.Idle}, err
	}

	state := NewQueryState()
	token := state.StartSubmission(question)

	resp, err := gen.Generate(ctx, question)
	if err != nil {
		state.FinishWithError(token, err)
		return state.Snapshot(), err
	}
	_, _ = state.FinishWithResponse(token, resp)
	return state.Snapshot(), nil
}
