package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jobscout/jobscout/internal/utils"
)

const defaultModel = "gemini-2.5-flash"

// Generator wraps the Google GenAI client for simple prompt-in, text-out
// interactions with retries.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a Generator backed by the Gemini API.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{
		client:     client,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual response, retrying transient failures with a linear backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, time.Duration(attempt)*time.Second); err != nil {
				return "", err
			}
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			continue
		}

		if output := collectText(resp); output != "" {
			return output, nil
		}
		lastErr = errors.New("gemini api returned empty response")
	}

	return "", lastErr
}

func collectText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
