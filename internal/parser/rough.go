package parser

import (
	"regexp"
	"strings"

	app_errors "gui-actions/internal/errors"
	"gui-actions/internal/types"
	"gui-actions/internal/utils"

	"github.com/tidwall/gjson"
)

var (
	// callStringRegex matches a single name(...) call spanning the whole text.
	callStringRegex = regexp.MustCompile(`(?s)^\s*([a-zA-Z_][a-zA-Z0-9_.]*)\((.*)\)\s*$`)

	// bboxTagRegex and pointTagRegex capture tag-wrapped numeric payloads that
	// some models emit in place of a parenthesized literal.
	bboxTagRegex  = regexp.MustCompile(`<bbox>([^<]*)</bbox>`)
	pointTagRegex = regexp.MustCompile(`<point>([^<]*)</point>`)

	// barePointKeyRegex matches a `point=` key that is not a suffix of another
	// key such as start_point= or end_point=.
	barePointKeyRegex = regexp.MustCompile(`(^|[\s(,])point=`)
)

// normalizeCallString applies the fixed rewrites that fold legacy key names
// and tag dialects into the canonical key='value' shape before argument
// splitting.
func normalizeCallString(text string) string {
	s := strings.ReplaceAll(text, "<|box_start|>", "")
	s = strings.ReplaceAll(s, "<|box_end|>", "")

	s = strings.ReplaceAll(s, "start_point=", "start_box=")
	s = strings.ReplaceAll(s, "end_point=", "end_box=")
	s = barePointKeyRegex.ReplaceAllString(s, "${1}start_box=")

	s = bboxTagRegex.ReplaceAllStringFunc(s, rewriteTagPayload)
	s = pointTagRegex.ReplaceAllStringFunc(s, rewriteTagPayload)
	return s
}

// rewriteTagPayload turns "<bbox>1 2 3 4</bbox>" into "(1,2,3,4)".
func rewriteTagPayload(tag string) string {
	open := strings.IndexByte(tag, '>')
	end := strings.LastIndexByte(tag, '<')
	if open < 0 || end <= open {
		return tag
	}
	fields := strings.FieldsFunc(tag[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return "(" + strings.Join(fields, ",") + ")"
}

// ParseCallString parses a single name(key='value', ...) call string into an
// untyped rough action. It tolerates the tag and key-name dialects listed in
// normalizeCallString but fails when the text has no name(...) shape at all.
func ParseCallString(text string) (*types.RoughAction, error) {
	normalized := normalizeCallString(text)

	m := callStringRegex.FindStringSubmatch(normalized)
	if m == nil {
		return nil, app_errors.NewParseError(app_errors.ErrNotAFunctionCall,
			"text %q is not a function call", utils.TruncateString(strings.TrimSpace(text), 128))
	}

	params := make(map[string]string)
	for _, part := range splitArguments(m[2]) {
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(part[:eq])
		if key == "" {
			continue
		}
		// Last occurrence of a duplicate key wins.
		params[key] = unquote(strings.TrimSpace(part[eq+1:]))
	}

	return &types.RoughAction{Type: m[1], Params: params}, nil
}

// splitArguments splits an argument list on commas, ignoring commas inside
// single or double quotes and inside nested parentheses or brackets.
func splitArguments(args string) []string {
	var parts []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(args); i++ {
		c := args[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(args) {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, args[start:i])
			start = i + 1
		}
	}
	if tail := args[start:]; strings.TrimSpace(tail) != "" {
		parts = append(parts, tail)
	}
	return parts
}

// unquote strips one matching pair of surrounding quotes, leaving the value
// otherwise verbatim.
func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '\'' || first == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// ParseFunctionCall converts a name/arguments envelope into a rough action.
// The arguments field is a JSON object string; empty means no parameters.
func ParseFunctionCall(call types.FunctionCall) (*types.RoughAction, error) {
	if call.Name == "" {
		return nil, app_errors.NewParseError(app_errors.ErrNotAFunctionCall, "function call has no name")
	}

	params := make(map[string]string)
	args := strings.TrimSpace(call.Arguments)
	if args != "" && args != "null" {
		if !gjson.Valid(args) {
			return nil, app_errors.NewParseError(app_errors.ErrMalformedArguments,
				"arguments of %s are not valid JSON: %s", call.Name, utils.TruncateString(args, 128))
		}
		parsed := gjson.Parse(args)
		if !parsed.IsObject() {
			return nil, app_errors.NewParseError(app_errors.ErrMalformedArguments,
				"arguments of %s are not a JSON object", call.Name)
		}
		parsed.ForEach(func(key, value gjson.Result) bool {
			params[key.String()] = value.String()
			return true
		})
	}

	return &types.RoughAction{Type: call.Name, Params: params}, nil
}
