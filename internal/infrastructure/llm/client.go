package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/metrics"
)

const systemPrompt = `You are a helpful support agent for a small e-commerce store.

Store policies:
- Shipping: Worldwide shipping, 5-7 business days
- Returns: 30-day return window, unused items only
- Support hours: Mon-Fri, 9am-6pm IST

Answer clearly, concisely, and politely.`

// NoReplyFallback is returned when the provider answers successfully but
// with no usable content. This is a normal outcome for the adapter, distinct
// from a provider error.
const NoReplyFallback = "Sorry, I couldn't generate a response right now."

// Options configure the reply generator.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client generates replies through an OpenAI-compatible chat completion
// API. Provider and transport failures are returned to the caller; the
// orchestrator owns the fallback policy.
type Client struct {
	api  *openai.Client
	opts Options
	log  zerolog.Logger
}

var _ domain.ReplyGenerator = (*Client)(nil)

// NewClient builds the provider client. BaseURL is optional and lets the
// same adapter target any OpenAI-compatible endpoint.
func NewClient(opts Options, log zerolog.Logger) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &Client{
		api:  openai.NewClientWithConfig(cfg),
		opts: opts,
		log:  log.With().Str("component", "reply-generator").Logger(),
	}
}

// Generate builds the provider request from the resolved history plus the
// new user message and returns the reply text. The call is bounded by the
// configured timeout.
func (c *Client) Generate(ctx context.Context, history []domain.Turn, userMessage string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    buildMessages(history, userMessage),
		Temperature: float32(c.opts.Temperature),
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		metrics.RecordProviderError()
		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.log.Debug().Dur("latency", time.Since(started)).Str("model", c.opts.Model).
		Msg("chat completion finished")

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.Warn().Str("model", c.opts.Model).Msg("provider returned no content")
		return NoReplyFallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages prepends the store policy prompt, maps the history onto
// provider roles (user sender to user, anything else to assistant) and
// appends the new user message as the final turn.
func buildMessages(history []domain.Turn, userMessage string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, turn := range history {
		role := openai.ChatMessageRoleAssistant
		if turn.Sender == domain.SenderUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Text,
		})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})
}
