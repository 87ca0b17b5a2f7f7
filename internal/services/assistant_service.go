package services

import (
	"context"
	"fmt"
	"time"

	"socialChat/configs"

	openai "github.com/sashabaranov/go-openai"
)

// AssistantService calls an OpenAI-compatible completion endpoint. Every call
// is bounded by the configured timeout; on timeout or API failure the caller
// gets an error and no reply text.
type AssistantService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewAssistantService(config *configs.Config) *AssistantService {
	clientConfig := openai.DefaultConfig(config.Viper.GetString("assistant.api_key"))
	if baseURL := config.Viper.GetString("assistant.base_url"); baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	timeout := config.Viper.GetDuration("assistant.timeout")
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &AssistantService{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   config.Viper.GetString("assistant.model"),
		timeout: timeout,
	}
}

func (as *AssistantService) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, as.timeout)
	defer cancel()

	resp, err := as.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: as.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
