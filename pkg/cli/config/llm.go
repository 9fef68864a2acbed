package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// LLM holds chat backend configuration
type LLM struct {
	Provider     string
	APIKey       string `masq:"secret"`
	Model        string
	ProjectID    string
	Location     string
	SystemPrompt string
}

// Flags returns CLI flags for LLM configuration
func (c *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Chat LLM provider (openai, claude, gemini)",
			Value:       "gemini",
			Destination: &c.Provider,
			Sources:     cli.EnvVars("RELBOARD_LLM_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for openai or claude",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("RELBOARD_LLM_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name; provider default when empty",
			Destination: &c.Model,
			Sources:     cli.EnvVars("RELBOARD_LLM_MODEL"),
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud Project ID for Gemini",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("RELBOARD_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI location/region",
			Value:       "us-central1",
			Destination: &c.Location,
			Sources:     cli.EnvVars("RELBOARD_GEMINI_LOCATION"),
		},
		&cli.StringFlag{
			Name:        "chat-system-prompt",
			Usage:       "Override the chat system instruction",
			Destination: &c.SystemPrompt,
			Sources:     cli.EnvVars("RELBOARD_CHAT_SYSTEM_PROMPT"),
		},
	}
}

// Configure creates the LLM client of the selected provider
func (c *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	switch c.Provider {
	case "openai":
		if c.APIKey == "" {
			return nil, goerr.New("llm-api-key is required for openai")
		}
		var opts []openai.Option
		if c.Model != "" {
			opts = append(opts, openai.WithModel(c.Model))
		}
		client, err := openai.New(ctx, c.APIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	case "claude":
		if c.APIKey == "" {
			return nil, goerr.New("llm-api-key is required for claude")
		}
		var opts []claude.Option
		if c.Model != "" {
			opts = append(opts, claude.WithModel(c.Model))
		}
		client, err := claude.New(ctx, c.APIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		return client, nil

	case "gemini":
		if c.ProjectID == "" {
			return nil, goerr.New("gemini-project-id is required for gemini")
		}
		var opts []gemini.Option
		if c.Model != "" {
			opts = append(opts, gemini.WithModel(c.Model))
		}
		client, err := gemini.New(ctx, c.ProjectID, c.Location, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client",
				goerr.V("project_id", c.ProjectID),
				goerr.V("location", c.Location))
		}
		return client, nil

	default:
		return nil, goerr.New("unsupported LLM provider", goerr.V("provider", c.Provider))
	}
}
