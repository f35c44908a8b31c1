package generator

import (
	"fmt"
	"log/slog"

	"github.com/Rorical/RoriSQL/internal/backend"
	"github.com/Rorical/RoriSQL/internal/config"
)

// Target describes where a generator sends questions
type Target struct {
	Kind     string
	Endpoint string
}

// FromConfig builds the generator selected by the active profile
func FromConfig(cfg *config.Config, logger *slog.Logger) (backend.Generator, Target, error) {
	profile := cfg.Current()

	switch cfg.GetGenerator() {
	case config.GeneratorHTTP:
		client, err := backend.NewHTTPClient(backend.HTTPConfig{
			BaseURL: cfg.GetBackendURL(),
			Timeout: cfg.GetTimeout(),
			Logger:  logger,
		})
		if err != nil {
			return nil, Target{}, err
		}
		return client, Target{Kind: config.GeneratorHTTP, Endpoint: client.Endpoint()}, nil
	case config.GeneratorOpenAI:
		gen, err := NewOpenAIGenerator(Config{
			APIKey:  profile.APIKey,
			BaseURL: profile.BaseURL,
			Model:   cfg.GetModel(),
			Schema:  profile.Schema,
			Logger:  logger,
		})
		if err != nil {
			return nil, Target{}, err
		}
		return gen, Target{Kind: config.GeneratorOpenAI, Endpoint: cfg.GetModel()}, nil
	default:
		return nil, Target{}, fmt.Errorf("unknown generator %q", cfg.GetGenerator())
	}
}
