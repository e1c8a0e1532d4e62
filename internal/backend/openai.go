package backend

import (
	"context"
	"fmt"
	"os"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIConfig configures the secondary text client. BaseURL allows any
// OpenAI-compatible endpoint.
type OpenAIConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// OpenAIText is the OpenAI-backed text completer used at the secondary
// tier.
type OpenAIText struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIText creates the OpenAI text client.
func NewOpenAIText(cfg OpenAIConfig) (*OpenAIText, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai: no API key configured and OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIText{model: model, opts: opts}, nil
}

// Complete sends one system+user exchange and returns the text of the reply.
func (o *OpenAIText) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", classify("openai completion", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &Failure{Kind: FailureMalformed, Message: "openai: empty choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier.
func (o *OpenAIText) Model() string { return o.model }
