package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/resume-builder/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiChat implements ChatModel for Google Gemini function calling
type GeminiChat struct {
	client *genai.Client
	config *Config
	model  string
	logger *zap.Logger
}

// NewGeminiChat creates a new Gemini chat model
func NewGeminiChat(ctx context.Context, config *Config, apiKey string, log *zap.Logger) (*GeminiChat, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GetModel(TierStandard)
	return &GeminiChat{
		client: client,
		config: config,
		model:  model,
		logger: logger.WithProvider(log, string(ProviderGemini), model),
	}, nil
}

// SendTurn starts a chat session seeded with the history and sends the new message
func (c *GeminiChat) SendTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	if c.model == "" {
		return nil, fmt.Errorf("no model configured for tier %s", TierStandard)
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.config.Temperature)
	if req.SystemContext != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemContext))
	}
	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: geminiDeclarations(req.Tools)}}
	}

	session := model.StartChat()
	session.History = geminiHistory(req.History)

	c.logger.Debug("sending turn", zap.Int("history", len(req.History)), zap.Int("tools", len(req.Tools)))

	resp, err := session.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return geminiTurnResponse(resp)
}

// Provider returns ProviderGemini
func (c *GeminiChat) Provider() Provider {
	return ProviderGemini
}

// Model returns the model name used for turns
func (c *GeminiChat) Model() string {
	return c.model
}

// Close releases resources held by the client
func (c *GeminiChat) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func geminiDeclarations(tools []Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  geminiSchema(tool.Parameters),
		})
	}
	return decls
}

func geminiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = geminiSchema(prop)
		}
	}
	return out
}

// geminiHistory maps conversation roles onto Gemini's user/model roles
func geminiHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}

// geminiTurnResponse collects the text and function calls of the first candidate
func geminiTurnResponse(resp *genai.GenerateContentResponse) (*TurnResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response: %w", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var text strings.Builder
	out := &TurnResponse{}
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			out.Calls = append(out.Calls, FunctionCall{Name: p.Name, Args: p.Args})
		case *genai.FunctionCall:
			out.Calls = append(out.Calls, FunctionCall{Name: p.Name, Args: p.Args})
		}
	}
	out.Text = strings.TrimSpace(text.String())
	return out, nil
}
