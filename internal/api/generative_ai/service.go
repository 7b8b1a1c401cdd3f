package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/dreamtrip-app/dreamtrip-api/config"
)

// AIClient wraps the Gemini SDK with the model and generation parameters
// from configuration.
type AIClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewAIClient builds a Gemini client. The API key is read from the
// GOOGLE_GEMINI_API_KEY environment variable.
func NewAIClient(ctx context.Context, cfg config.GeminiConfig) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &AIClient{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](cfg.Temperature),
			TopP:             genai.Ptr[float32](cfg.TopP),
			TopK:             genai.Ptr[float32](cfg.TopK),
			MaxOutputTokens:  cfg.MaxOutputTokens,
			ResponseMIMEType: "application/json",
		},
	}, nil
}

// GenerateContent sends a single prompt and returns the raw response text.
// The response is requested as JSON but the model does not always comply;
// callers are expected to normalize it.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), ai.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}

// ChatSession is a stateful chat with generation history.
type ChatSession struct {
	chat *genai.Chat
}

// StartChatSession opens a chat against the configured model.
func (ai *AIClient) StartChatSession(ctx context.Context) (*ChatSession, error) {
	chat, err := ai.client.Chats.Create(ctx, ai.model, ai.config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &ChatSession{chat: chat}, nil
}

// SendMessage sends one message on the session and returns the response text.
func (cs *ChatSession) SendMessage(ctx context.Context, message string) (string, error) {
	result, err := cs.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
