package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoAPIKey is returned when a provider is constructed without credentials
var ErrNoAPIKey = errors.New("API key is required")

// ErrEmptyResponse is returned when a provider answers without any candidate content
var ErrEmptyResponse = errors.New("empty model response")

// Role identifies the author of a conversation message
type Role string

// Conversation roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one prior turn of the conversation
type Message struct {
	Role Role
	Text string
}

// Tool declares a function the model may call
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// TurnRequest is a single conversational turn sent to a model
type TurnRequest struct {
	// SystemContext is the system instruction for this turn
	SystemContext string
	History       []Message
	Message       string
	Tools         []Tool
}

// FunctionCall is a structured tool invocation returned by the model
type FunctionCall struct {
	Name string
	Args map[string]any
}

// TurnResponse is the model's answer to a turn. Text may be empty when the model only calls tools.
type TurnResponse struct {
	Text  string
	Calls []FunctionCall
}

// ChatModel is an abstraction over chat providers with tool calling
type ChatModel interface {
	// SendTurn sends one user message with its history and returns the reply
	SendTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error)
	// Provider returns the provider backing this model
	Provider() Provider
	// Model returns the model name used for turns
	Model() string
	// Close releases any resources held by the model
	Close() error
}

// NewChatModel creates a chat model for the configured provider using the standard tier
func NewChatModel(ctx context.Context, config *Config, apiKey string, logger *zap.Logger) (ChatModel, error) {
	if config == nil {
		config = DefaultConfig()
	}

	// Concrete constructors return typed nil pointers on error; keep the interface nil
	switch config.Provider {
	case ProviderGemini, "":
		model, err := NewGeminiChat(ctx, config, apiKey, logger)
		if err != nil {
			return nil, err
		}
		return model, nil
	case ProviderAnthropic:
		model, err := NewAnthropicChat(config, apiKey, logger)
		if err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
