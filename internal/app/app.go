// Package app assembles the forge service from environment
// configuration, shared by the serving commands.
package app

import (
	"fmt"

	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/forge/service"
	"github.com/louisbranch/fateforge/internal/forge/storage"
	"github.com/louisbranch/fateforge/internal/forge/storage/sqlite"
)

// Config selects the generation backend and attempt audit storage.
// With no OpenAI key the deterministic scripted collaborator is used;
// with no database path attempt records are discarded.
type Config struct {
	DBPath        string `env:"FATEFORGE_DB_PATH"`
	OpenAIAPIKey  string `env:"FATEFORGE_OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"FATEFORGE_OPENAI_BASE_URL"`
	OpenAIModel   string `env:"FATEFORGE_OPENAI_MODEL"`
}

// BuildService wires the collaborator and recorder the config
// describes. The returned close function releases storage resources.
func BuildService(cfg Config) (*service.Service, func() error, error) {
	var collaborator model.Collaborator = model.Scripted{}
	if cfg.OpenAIAPIKey != "" {
		c, err := model.NewOpenAICollaborator(model.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build openai collaborator: %w", err)
		}
		collaborator = c
	}

	var recorder storage.Recorder = storage.NopRecorder{}
	closeFn := func() error { return nil }
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open attempt store: %w", err)
		}
		recorder = store
		closeFn = store.Close
	}

	return service.New(collaborator, service.Options{Recorder: recorder}), closeFn, nil
}
