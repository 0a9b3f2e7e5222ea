package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const scriptToolName = "save_podcast_script"

// Writer drafts episode scripts with the Anthropic API.
type Writer struct {
	apiKey string
	model  anthropic.Model
	opts   []option.RequestOption
}

// NewWriter creates a script writer. An empty model selects the default.
func NewWriter(apiKey, model string, opts ...option.RequestOption) *Writer {
	m := anthropic.ModelClaudeSonnet4_5_20250929
	if model != "" {
		m = anthropic.Model(model)
	}

	return &Writer{
		apiKey: apiKey,
		model:  m,
		opts:   opts,
	}
}

// getScriptTool returns the tool definition for structured script output.
func getScriptTool() anthropic.ToolParam {
	return anthropic.ToolParam{
		Name:        scriptToolName,
		Description: anthropic.String("Save the podcast script as a title and an ordered list of speaker segments"),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Short episode title",
				},
				"segments": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"speaker": map[string]interface{}{"type": "string"},
							"text":    map[string]interface{}{"type": "string"},
						},
						"required": []string{"speaker", "text"},
					},
					"description": "Script segments in speaking order",
				},
			},
			Required: []string{"title", "segments"},
		},
	}
}

// Write drafts a script for the brief.
func (w *Writer) Write(ctx context.Context, brief Brief) (*Script, error) {
	if w.apiKey == "" {
		return nil, errors.New("API key required: set ANTHROPIC_API_KEY or run 'curate config set-key anthropic'")
	}

	opts := append([]option.RequestOption{option.WithAPIKey(w.apiKey)}, w.opts...)
	client := anthropic.NewClient(opts...)

	toolDef := getScriptTool()
	tool := anthropic.ToolUnionParamOfTool(toolDef.InputSchema, toolDef.Name)
	tool.OfTool.Description = toolDef.Description

	params := anthropic.MessageNewParams{
		Model:     w.model,
		MaxTokens: 8192,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(brief.Summary.DialogMode)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(brief.Prompt())),
		},
		Tools:      []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceParamOfTool(scriptToolName),
	}

	slog.Info("requesting script", "model", w.model, "stories", len(brief.Summary.News))

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate script via Anthropic API: %w", err)
	}

	return parseScriptToolUse(resp.Content)
}

// parseScriptToolUse extracts the script from response content blocks.
func parseScriptToolUse(content []anthropic.ContentBlockUnion) (*Script, error) {
	for _, block := range content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok {
			continue
		}

		inputBytes, err := json.Marshal(toolUse.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tool input: %w", err)
		}

		var script Script
		if err := json.Unmarshal(inputBytes, &script); err != nil {
			return nil, fmt.Errorf("failed to parse tool input: %w", err)
		}

		if len(script.Segments) == 0 {
			return nil, ErrEmptyScript
		}

		return &script, nil
	}

	return nil, errors.New("no tool use found in Anthropic API response")
}
