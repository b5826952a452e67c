// Package parser turns raw model output into canonical GUI actions. It covers
// the non-streaming path: dialect detection, rough call-string extraction and
// standardization into the shared action model.
package parser

import (
	"gui-actions/internal/types"
	"gui-actions/internal/utils"

	"github.com/sirupsen/logrus"
)

// Parser is the non-streaming parse pipeline. Safe for concurrent use; all
// state lives in the per-call content.
type Parser struct {
	standardizer *Standardizer
}

// NewParser creates a Parser from the parser configuration and an optional
// action-type alias table.
func NewParser(cfg types.ParserConfig, aliases map[string]string) *Parser {
	return &Parser{
		standardizer: NewStandardizer(cfg.CoordinateMode, aliases),
	}
}

// ParseGUIResponse parses a complete model message into actions. All parse
// failures are folded into the response's ErrorMessage; this entry point
// never returns an error to the caller.
func (p *Parser) ParseGUIResponse(content string) *types.ParsedGUIResponse {
	response := &types.ParsedGUIResponse{RawContent: content}

	result, err := p.detectAndExtract(content)
	if err != nil {
		logrus.WithError(err).Debug("Failed to extract actions from model output")
		response.ErrorMessage = err.Error()
		response.Actions = []types.Action{}
		return response
	}

	response.ReasoningContent = result.ReasoningContent
	response.RawActionStrings = result.RawActionStrings

	if result.Format.BuildsActionsDirectly() {
		response.Actions = result.Actions
		logrus.WithFields(logrus.Fields{
			"format":  result.Format,
			"actions": len(response.Actions),
		}).Debug("Parsed model output")
		return response
	}

	actions := make([]types.Action, 0, len(result.RawActionStrings))
	for _, raw := range result.RawActionStrings {
		rough, err := ParseCallString(raw)
		if err != nil {
			return p.failResponse(response, err)
		}
		action, err := p.standardizer.StandardizeAction(rough)
		if err != nil {
			return p.failResponse(response, err)
		}
		actions = append(actions, *action)
	}
	response.Actions = actions

	logrus.WithFields(logrus.Fields{
		"format":  result.Format,
		"actions": len(response.Actions),
	}).Debug("Parsed model output")
	return response
}

// failResponse converts a parse error into the all-error response shape:
// empty actions plus the error message. Partial results are discarded.
func (p *Parser) failResponse(response *types.ParsedGUIResponse, err error) *types.ParsedGUIResponse {
	logrus.WithError(err).WithField("content", utils.TruncateString(response.RawContent, 128)).
		Debug("Failed to parse action string")
	response.Actions = []types.Action{}
	response.ErrorMessage = err.Error()
	return response
}
