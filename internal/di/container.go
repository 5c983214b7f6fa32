package di

import (
	"fmt"

	"forecast-agent/internal/application/port/input"
	"forecast-agent/internal/application/port/output"
	"forecast-agent/internal/infrastructure/llm/openrouter"
	"forecast-agent/internal/infrastructure/logger"
	"forecast-agent/internal/usecase/pipeline"
)

type Container struct {
	LLM      output.CompletionPort
	Logger   output.LoggerPort
	Pipeline input.ForecastRunner
}

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	OpenRouterURL    string
	Verbose          bool
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if cfg.OpenRouterURL != "" {
		llmCfg.BaseURL = cfg.OpenRouterURL
	}
	if cfg.Verbose {
		llmCfg.Logger = log
	}
	llm := openrouter.NewAdapter(llmCfg)

	return &Container{
		LLM:      llm,
		Logger:   log,
		Pipeline: pipeline.New(llm, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
