// Package llm wraps the OpenAI API behind a small interface so services can
// be tested with fakes.
package llm

import (
	"context"
	"io"
	"net/http"

	"duit/config"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the language-model boundary: prompt in, text out. Callers parse
// any expected JSON themselves and treat malformed or empty replies as errors.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type OpenAIClient struct {
	client       *openai.Client
	chatModel    string
	whisperModel string
}

func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.RequestTimeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(clientCfg),
		chatModel:    cfg.ChatModel,
		whisperModel: cfg.WhisperModel,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", io.ErrUnexpectedEOF
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe runs Whisper speech-to-text on an uploaded audio file.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
