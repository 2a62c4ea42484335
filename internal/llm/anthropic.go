package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/jonathan/resume-builder/internal/logger"
	"go.uber.org/zap"
)

// DefaultMaxTokens bounds a single Anthropic reply
const DefaultMaxTokens = 1024

// AnthropicChat implements ChatModel for Claude tool use
type AnthropicChat struct {
	client    anthropic.Client
	config    *Config
	model     string
	maxTokens int64
	logger    *zap.Logger
}

// NewAnthropicChat creates a new Anthropic chat model
func NewAnthropicChat(config *Config, apiKey string, log *zap.Logger, opts ...option.RequestOption) (*AnthropicChat, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	model := config.GetModel(TierStandard)
	return &AnthropicChat{
		client:    anthropic.NewClient(clientOpts...),
		config:    config,
		model:     model,
		maxTokens: DefaultMaxTokens,
		logger:    logger.WithProvider(log, string(ProviderAnthropic), model),
	}, nil
}

// SendTurn sends the history and new message through the Messages API
func (c *AnthropicChat) SendTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	if c.model == "" {
		return nil, fmt.Errorf("no model configured for tier %s", TierStandard)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  anthropicMessages(req.History, req.Message),
	}
	if c.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.config.Temperature))
	}
	if req.SystemContext != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemContext}}
	}
	if len(req.Tools) > 0 {
		params.Tools = anthropicTools(req.Tools)
	}

	c.logger.Debug("sending turn", zap.Int("history", len(req.History)), zap.Int("tools", len(req.Tools)))

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API call failed: %w", err)
	}
	return anthropicTurnResponse(resp)
}

// Provider returns ProviderAnthropic
func (c *AnthropicChat) Provider() Provider {
	return ProviderAnthropic
}

// Model returns the model name used for turns
func (c *AnthropicChat) Model() string {
	return c.model
}

// Close is a no-op; the HTTP client holds no long-lived resources
func (c *AnthropicChat) Close() error {
	return nil
}

// anthropicMessages converts the history and the new message into alternating
// Claude messages. Consecutive messages of the same role are merged because the
// Messages API rejects two user turns in a row.
func anthropicMessages(history []Message, message string) []anthropic.MessageParam {
	type turn struct {
		role Role
		text []string
	}
	turns := make([]turn, 0, len(history)+1)
	add := func(role Role, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		if role != RoleAssistant {
			role = RoleUser
		}
		if n := len(turns); n > 0 && turns[n-1].role == role {
			turns[n-1].text = append(turns[n-1].text, text)
			return
		}
		turns = append(turns, turn{role: role, text: []string{text}})
	}
	for _, msg := range history {
		add(msg.Role, msg.Text)
	}
	add(RoleUser, message)

	// The conversation must open with a user turn
	for len(turns) > 0 && turns[0].role == RoleAssistant {
		turns = turns[1:]
	}

	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(strings.Join(t.text, "\n\n"))
		if t.role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

func anthropicTools(tools []Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		schema := anthropic.ToolInputSchemaParam{}
		if tool.Parameters != nil {
			schema.Properties = tool.Parameters.PropertiesJSON()
			schema.Required = tool.Parameters.Required
		}
		param := &anthropic.ToolParam{
			Name:        tool.Name,
			InputSchema: schema,
		}
		if tool.Description != "" {
			param.Description = anthropic.String(tool.Description)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: param})
	}
	return out
}

func anthropicTurnResponse(resp *anthropic.Message) (*TurnResponse, error) {
	if resp == nil || len(resp.Content) == 0 {
		return nil, fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var text strings.Builder
	out := &TurnResponse{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "tool_use":
			args := map[string]any{}
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &args); err != nil {
					return nil, fmt.Errorf("failed to decode tool input for %s: %w", block.Name, err)
				}
			}
			out.Calls = append(out.Calls, FunctionCall{Name: block.Name, Args: args})
		}
	}
	out.Text = strings.TrimSpace(text.String())
	return out, nil
}
