// Package llm talks to the extraction and resolution models.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/examlens/config"
	"github.com/rs/zerolog/log"
)

// ErrEmptyResponse means the model answered without any text.
var ErrEmptyResponse = errors.New("model returned nothing")

// Extractor reads a whole PDF and returns the raw model text.
type Extractor interface {
	ExtractQuestions(ctx context.Context, pdf []byte, instruction, request string) (string, error)
}

// Solver answers a text prompt.
type Solver interface {
	Solve(ctx context.Context, prompt string) (string, error)
}

func NewExtractor(cfg *config.Config) (Extractor, error) {
	return NewGemini(context.Background(), cfg.Gemini.ApiKey, cfg.Gemini.ExtractionModel)
}

// NewSolver returns nil when no resolution key is configured. Callers treat a
// nil Solver as "leave unknown answers unresolved".
func NewSolver(cfg *config.Config) (Solver, error) {
	if !cfg.ResolverEnabled() {
		log.Warn().Msg("No resolver API key set. Unknown answer keys will stay unresolved.")
		return nil, nil
	}
	switch cfg.Resolver.Provider {
	case "gemini":
		return NewGemini(context.Background(), cfg.ResolverAPIKey(), cfg.Resolver.Model)
	case "openai":
		return NewOpenAI(cfg.Resolver.BaseURL, cfg.ResolverAPIKey(), cfg.Resolver.Model), nil
	}
	return nil, fmt.Errorf("unknown resolver provider %q", cfg.Resolver.Provider)
}
