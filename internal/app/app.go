// Package app provides the main application logic.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gui-actions/internal/parser"
	"gui-actions/internal/stream"
	"gui-actions/internal/types"

	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// App exposes the parse pipelines to the command-line entry points.
type App struct {
	configManager types.ConfigManager
	parser        *parser.Parser
	stdin         io.Reader
	stdout        io.Writer
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	ConfigManager types.ConfigManager
	Parser        *parser.Parser
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		configManager: params.ConfigManager,
		parser:        params.Parser,
		stdin:         os.Stdin,
		stdout:        os.Stdout,
	}
}

// RunParse parses one complete model message and prints the result as JSON.
// The message comes from the file named by the first argument, or stdin.
func (a *App) RunParse(args []string) error {
	content, err := a.readInput(args)
	if err != nil {
		return err
	}

	response := a.parser.ParseGUIResponse(string(content))
	return a.printJSON(response)
}

// RunStream consumes a chat-completion SSE stream, prints each chunk's
// incremental result as a JSON line, and finishes with the turn's aggregate.
func (a *App) RunStream(ctx context.Context, args []string) error {
	input := a.stdin
	if len(args) > 0 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open stream input: %w", err)
		}
		defer file.Close()
		input = file
	}

	reader := stream.NewSSEReader(input, a.configManager.GetParserConfig().MaxScanBufferBytes)
	state := stream.NewState()

	for {
		if err := ctx.Err(); err != nil {
			logrus.Info("Stream processing canceled")
			return err
		}

		payload, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		result, finished := stream.ProcessCompletionChunk(payload, state)
		if result.Content != "" || result.ReasoningContent != "" || result.HasToolCallUpdate {
			if err := a.printJSON(result); err != nil {
				return err
			}
		}
		if finished {
			break
		}
	}

	return a.printJSON(state.Finalize())
}

func (a *App) readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return content, nil
	}
	content, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return content, nil
}

func (a *App) printJSON(v any) error {
	encoder := json.NewEncoder(a.stdout)
	return encoder.Encode(v)
}
