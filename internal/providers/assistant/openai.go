package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

var _ core.ConversationService = (*OpenAI)(nil)

// OpenAI talks to the Assistants API (v2, beta).
type OpenAI struct {
	client openai.Client
	cfg    *config.OpenAIConfig
	tools  []core.Tool
}

func NewOpenAI(cfg *config.OpenAIConfig, tools []core.Tool) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithHeader("User-Agent", core.DeskUserAgent),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		tools:  tools,
	}
}

// Bootstrap returns the id of the assistant to run. A configured id is reused
// when the service still knows it; otherwise a new assistant is created.
func (o *OpenAI) Bootstrap(ctx context.Context) (string, error) {
	logger := log.FromCtx(ctx)

	if id := strings.TrimSpace(o.cfg.AssistantID); id != "" {
		a, err := o.client.Beta.Assistants.Get(ctx, id)
		if err == nil {
			logger.Debug().Str("assistant", a.ID).Str("model", a.Model).Msg("using configured assistant")
			return a.ID, nil
		}
		if !isNotFound(err) {
			return "", fmt.Errorf("failed to retrieve assistant %s: %w", id, err)
		}
		logger.Warn().Str("assistant", id).Msg("configured assistant not found, creating a new one")
	}

	params, err := o.assistantParams()
	if err != nil {
		return "", err
	}

	a, err := o.client.Beta.Assistants.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}

	logger.Info().Str("assistant", a.ID).Str("model", a.Model).Msg("assistant created")
	return a.ID, nil
}

func (o *OpenAI) assistantParams() (openai.BetaAssistantNewParams, error) {
	tools := make([]openai.AssistantToolUnionParam, 0, len(o.tools))
	for _, t := range o.tools {
		var schema openai.FunctionParameters
		if err := json.Unmarshal(t.Function.Parameters, &schema); err != nil {
			return openai.BetaAssistantNewParams{}, fmt.Errorf("invalid schema for %s: %w", t.Function.Name, err)
		}
		tools = append(tools, openai.AssistantToolUnionParam{
			OfFunction: &openai.FunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        t.Function.Name,
					Description: openai.String(t.Function.Description),
					Parameters:  schema,
				},
			},
		})
	}

	return openai.BetaAssistantNewParams{
		Model:        openai.ChatModel(o.cfg.Model),
		Name:         openai.String(assistantName),
		Instructions: openai.String(instructions),
		Tools:        tools,
	}, nil
}

func (o *OpenAI) CreateThread(ctx context.Context) (string, error) {
	t, err := o.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (o *OpenAI) AddUserMessage(ctx context.Context, threadID, content string) (string, error) {
	m, err := o.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (o *OpenAI) CreateRun(ctx context.Context, threadID, assistantID string) (core.Run, error) {
	r, err := o.client.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	})
	if err != nil {
		return core.Run{}, err
	}
	return toRun(r), nil
}

func (o *OpenAI) GetRun(ctx context.Context, threadID, runID string) (core.Run, error) {
	r, err := o.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return core.Run{}, err
	}
	return toRun(r), nil
}

func (o *OpenAI) CancelRun(ctx context.Context, threadID, runID string) error {
	_, err := o.client.Beta.Threads.Runs.Cancel(ctx, threadID, runID)
	return err
}

func (o *OpenAI) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []core.ToolOutput) (core.Run, error) {
	params := openai.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(outputs)),
	}
	for _, out := range outputs {
		params.ToolOutputs = append(params.ToolOutputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(out.ToolCallID),
			Output:     openai.String(out.Output),
		})
	}

	r, err := o.client.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, params)
	if err != nil {
		return core.Run{}, err
	}
	return toRun(r), nil
}

func (o *OpenAI) MessagesAfter(ctx context.Context, threadID, messageID string) ([]core.Message, error) {
	page, err := o.client.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{
		After: openai.String(messageID),
		Order: openai.BetaThreadMessageListParamsOrderAsc,
	})
	if err != nil {
		return nil, err
	}

	msgs := make([]core.Message, 0, len(page.Data))
	for _, m := range page.Data {
		msgs = append(msgs, core.Message{
			ID:      m.ID,
			Role:    string(m.Role),
			Content: messageText(m),
		})
	}
	return msgs, nil
}

// messageText joins the text parts of a message; image parts are ignored.
func messageText(m openai.Message) string {
	var parts []string
	for _, c := range m.Content {
		if c.Type == "text" && c.Text.Value != "" {
			parts = append(parts, c.Text.Value)
		}
	}
	return strings.Join(parts, "\n")
}

func toRun(r *openai.Run) core.Run {
	run := core.Run{
		ID:        r.ID,
		ThreadID:  r.ThreadID,
		Status:    core.RunStatus(r.Status),
		LastError: r.LastError.Message,
	}

	if run.Status == core.RunRequiresAction {
		for _, tc := range r.RequiredAction.SubmitToolOutputs.ToolCalls {
			run.ToolCalls = append(run.ToolCalls, core.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: core.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
	}
	return run
}

func isNotFound(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	// An id of the wrong shape is rejected with 400 rather than 404.
	return apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusBadRequest
}
