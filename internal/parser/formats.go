package parser

import (
	"regexp"
	"strings"

	app_errors "gui-actions/internal/errors"
	"gui-actions/internal/types"
	"gui-actions/internal/utils"
)

// extractResult is the output of one dialect extractor: separated reasoning
// text plus either raw action strings for the rough-action stage or, for
// dialects that carry structured calls, finished canonical actions.
type extractResult struct {
	Format           types.ActionFormat
	ReasoningContent string
	RawActionStrings []string
	Actions          []types.Action
}

var (
	// thinkPairRegex matches a think-named tag pair. The tag name may carry an
	// arbitrary suffix (<think_never_used>, <thinking>) and attributes.
	thinkPairRegex = regexp.MustCompile(`(?s)<think[a-zA-Z0-9_]*[^>]*>(.*?)</think[a-zA-Z0-9_]*>`)

	answerPairRegex      = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)
	computerEnvPairRegex = regexp.MustCompile(`(?s)<computer_env>(.*?)</computer_env>`)
	bracketThoughtRegex  = regexp.MustCompile(`(?s)<Thought>(.*?)</Thought>`)

	functionBlockRegex  = regexp.MustCompile(`(?s)<function=([a-zA-Z0-9_.]+)>(.*?)</function>`)
	parameterPairRegex  = regexp.MustCompile(`(?s)<parameter=([a-zA-Z0-9_]+)>(.*?)</parameter>`)
	callCandidateRegex  = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*\(`)
	thoughtSectionRegex = regexp.MustCompile(`(?s)Thought:(.*?)Action[:：]`)
)

// actionLabels are the labels that introduce action text. The fullwidth colon
// variant appears in messages from models prompted in Chinese.
var actionLabels = []string{"Action:", "Action："}

// extractorFunc tries to parse content in one dialect. A nil result with a
// nil error means the dialect does not apply and the chain moves on; an error
// means the dialect was positively identified but its content is unusable.
type extractorFunc func(p *Parser, content string) (*extractResult, error)

// formatChain is the fixed dialect priority order. The fallback entry always
// produces a result or an error, so detection never falls off the end.
var formatChain = []extractorFunc{
	(*Parser).extractSeedXML,
	(*Parser).extractOmni,
	(*Parser).extractThoughtAction,
	(*Parser).extractReflectionSummary,
	(*Parser).extractO1,
	(*Parser).extractFallback,
}

// detectAndExtract runs the chain and returns the first extractor's result.
func (p *Parser) detectAndExtract(content string) (*extractResult, error) {
	for _, extract := range formatChain {
		result, err := extract(p, content)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
		"no extractor handled content %q", utils.TruncateString(content, 128))
}

// extractSeedXML handles the pure-tag dialect: a <seed:tool_call> subtree
// and/or an <answer> pair, with no computer_env payload. It builds canonical
// actions directly since the parameters already arrive as key/value tags.
func (p *Parser) extractSeedXML(content string) (*extractResult, error) {
	hasToolCall := strings.Contains(content, "<seed:tool_call>")
	hasAnswer := answerPairRegex.MatchString(content)
	if (!hasToolCall && !hasAnswer) || strings.Contains(content, "computer_env") {
		return nil, nil
	}

	result := &extractResult{Format: types.ActionFormatSeedXML}
	if m := thinkPairRegex.FindStringSubmatch(content); m != nil {
		result.ReasoningContent = strings.TrimSpace(m[1])
	}

	if m := answerPairRegex.FindStringSubmatch(content); m != nil {
		result.Actions = append(result.Actions, types.Action{
			Type: "finished",
			Inputs: map[string]types.ActionInput{
				"content": {Text: strings.TrimSpace(m[1])},
			},
		})
	}

	for _, block := range functionBlockRegex.FindAllStringSubmatch(content, -1) {
		params := make(map[string]string)
		for _, pm := range parameterPairRegex.FindAllStringSubmatch(block[2], -1) {
			params[pm[1]] = strings.TrimSpace(pm[2])
		}
		action, err := p.standardizer.StandardizeAction(&types.RoughAction{Type: block[1], Params: params})
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, *action)
	}

	// The structure was positively identified; yielding nothing is a hard
	// failure, not a reason to try the next dialect.
	if len(result.Actions) == 0 {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"tool_call structure contains no function entries")
	}
	return result, nil
}

// extractOmni handles the tag dialect that wraps action text in
// <computer_env> or carries only a final <answer> pair.
func (p *Parser) extractOmni(content string) (*extractResult, error) {
	env := computerEnvPairRegex.FindStringSubmatch(content)
	answer := answerPairRegex.FindStringSubmatch(content)
	if env == nil && answer == nil {
		return nil, nil
	}

	result := &extractResult{Format: types.ActionFormatOmni}
	if m := thinkPairRegex.FindStringSubmatch(content); m != nil {
		result.ReasoningContent = strings.TrimSpace(m[1])
	}

	var actionText string
	if env != nil {
		actionText = strings.TrimSpace(env[1])
		actionText = strings.TrimSpace(strings.TrimPrefix(actionText, "Action:"))
	} else {
		actionText = "finished(content='" + strings.TrimSpace(answer[1]) + "')"
	}

	result.RawActionStrings = utils.SplitAndTrim(actionText, "\n\n")
	if len(result.RawActionStrings) == 0 {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"computer_env block contains no action text")
	}
	return result, nil
}

// extractThoughtAction handles the legacy "Thought: ... Action: ..." dialect.
func (p *Parser) extractThoughtAction(content string) (*extractResult, error) {
	if !strings.Contains(content, "Thought:") || !strings.Contains(content, "Action:") {
		return nil, nil
	}
	if strings.Contains(content, "Reflection:") || strings.Contains(content, "Action_Summary:") {
		return nil, nil
	}

	result := &extractResult{Format: types.ActionFormatThoughtAction}
	if m := thoughtSectionRegex.FindStringSubmatch(content); m != nil {
		result.ReasoningContent = strings.TrimSpace(m[1])
	}

	actionText := content[strings.LastIndex(content, "Action:")+len("Action:"):]
	result.RawActionStrings = utils.SplitAndTrim(actionText, "\n\n")
	if len(result.RawActionStrings) == 0 {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"Action: label present but no action text follows")
	}
	return result, nil
}

// extractReflectionSummary handles the "Reflection: ... Action_Summary: ..."
// dialect. Reasoning is the reflection and summary joined with ", ".
func (p *Parser) extractReflectionSummary(content string) (*extractResult, error) {
	hasBoth := strings.Contains(content, "Reflection:") && strings.Contains(content, "Action_Summary:")
	startsWithSummary := strings.HasPrefix(strings.TrimSpace(content), "Action_Summary:")
	if !hasBoth && !startsWithSummary {
		return nil, nil
	}

	result := &extractResult{Format: types.ActionFormatReflection}

	reflection := sectionBetween(content, "Reflection:", "Action_Summary:")
	summary := sectionBetween(content, "Action_Summary:", actionLabels...)
	switch {
	case reflection != "" && summary != "":
		result.ReasoningContent = reflection + ", " + summary
	case summary != "":
		result.ReasoningContent = summary
	default:
		result.ReasoningContent = reflection
	}

	actionText := textAfterLastActionLabel(content)
	result.RawActionStrings = utils.SplitAndTrim(actionText, "\n\n")
	if len(result.RawActionStrings) == 0 {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"Action_Summary present but no action text follows")
	}
	return result, nil
}

// extractO1 handles the bracketed "<Thought>" dialect with an optional
// </Output> terminator after the action text.
func (p *Parser) extractO1(content string) (*extractResult, error) {
	m := bracketThoughtRegex.FindStringSubmatch(content)
	if m == nil {
		return nil, nil
	}

	result := &extractResult{Format: types.ActionFormatO1}
	result.ReasoningContent = strings.TrimSpace(m[1])
	if summary := sectionBetween(content, "Action_Summary:", "Action:"); summary != "" {
		result.ReasoningContent += ", " + summary
	}

	rest := content
	if idx := strings.LastIndex(rest, "Action:"); idx >= 0 {
		rest = rest[idx+len("Action:"):]
	} else {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"Thought block present but no Action: label follows")
	}
	if idx := strings.Index(rest, "</Output>"); idx >= 0 {
		rest = rest[:idx]
	}

	result.RawActionStrings = utils.SplitAndTrim(rest, "\n\n")
	if len(result.RawActionStrings) == 0 {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"Action: label present but no action text follows")
	}
	return result, nil
}

// extractFallback is the last-resort extractor: it scans the whole text for
// the first balanced name(...) call and treats it as the single action.
func (p *Parser) extractFallback(content string) (*extractResult, error) {
	result := &extractResult{Format: types.ActionFormatFallback}
	if m := thoughtSectionRegex.FindStringSubmatch(content); m != nil {
		result.ReasoningContent = strings.TrimSpace(m[1])
	}

	call := findBalancedCall(content)
	if call == "" {
		return nil, app_errors.NewParseError(app_errors.ErrNoActionDetected,
			"no action detected in %q", utils.TruncateString(strings.TrimSpace(content), 128))
	}
	result.RawActionStrings = []string{call}
	return result, nil
}

// sectionBetween returns the trimmed text between the first occurrence of
// start and the earliest following end marker. With no end marker found the
// section runs to the end of the text; a missing start means "".
func sectionBetween(content, start string, ends ...string) string {
	i := strings.Index(content, start)
	if i < 0 {
		return ""
	}
	section := content[i+len(start):]
	cut := len(section)
	for _, end := range ends {
		if j := strings.Index(section, end); j >= 0 && j < cut {
			cut = j
		}
	}
	return strings.TrimSpace(section[:cut])
}

// textAfterLastActionLabel returns the text after the last "Action:" label,
// accepting the fullwidth colon variant.
func textAfterLastActionLabel(content string) string {
	best := -1
	bestLen := 0
	for _, label := range actionLabels {
		if i := strings.LastIndex(content, label); i > best {
			best = i
			bestLen = len(label)
		}
	}
	if best < 0 {
		return ""
	}
	return content[best+bestLen:]
}

// findBalancedCall returns the first substring of content that forms a
// name(...) call with balanced parentheses, honoring single and double quotes
// so a ')' inside a quoted value does not terminate the call.
func findBalancedCall(content string) string {
	for _, loc := range callCandidateRegex.FindAllStringIndex(content, -1) {
		depth := 0
		var quote byte
		for i := loc[1] - 1; i < len(content); i++ {
			c := content[i]
			switch {
			case quote != 0:
				if c == '\\' && i+1 < len(content) {
					i++
				} else if c == quote {
					quote = 0
				}
			case c == '\'' || c == '"':
				quote = c
			case c == '(':
				depth++
			case c == ')':
				depth--
				if depth == 0 {
					return content[loc[0] : i+1]
				}
			}
		}
	}
	return ""
}
