package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/remindme/pkg/log"
)

type AnalyzerConfig struct {
	BaseURL string `env:"ANALYZER_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey  string `env:"ANALYZER_API_KEY,required,notEmpty"`
	Model   string `env:"ANALYZER_MODEL" envDefault:"gpt-4o-mini"`
}

func NewAnalyzerConfig(ctx context.Context) *AnalyzerConfig {
	c := &AnalyzerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Analyzer config")
	}
	return c
}
