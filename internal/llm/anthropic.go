package llm

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicTransport sends completion requests to the Anthropic messages
// API. Retries are handled by the Client, so the SDK's own retry is
// disabled.
type anthropicTransport struct {
	client anthropic.Client
}

func newAnthropicTransport(apiKey string) *anthropicTransport {
	return &anthropicTransport{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
	}
}

func (t *anthropicTransport) complete(ctx context.Context, model ModelInfo, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model.APIName),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := t.client.Messages.New(ctx, params)
	if err != nil {
		return "", wrapAnthropicError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := b.String()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// wrapAnthropicError converts SDK errors into ProviderError so the retry
// policy can classify them by status code.
func wrapAnthropicError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return &ProviderError{
			Provider:   ProviderAnthropic,
			StatusCode: apierr.StatusCode,
			Message:    apierr.Error(),
		}
	}
	return err
}
