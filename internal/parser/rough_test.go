package parser

import (
	"testing"

	app_errors "gui-actions/internal/errors"
	"gui-actions/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallString(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedType   string
		expectedParams map[string]string
	}{
		{
			name:           "single quoted param",
			input:          "click(start_box='(100,200)')",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(100,200)"},
		},
		{
			name:           "double quoted param",
			input:          `click(start_box="(100,200)")`,
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(100,200)"},
		},
		{
			name:           "multiple params",
			input:          "drag(start_box='(10,20)', end_box='(30,40)')",
			expectedType:   "drag",
			expectedParams: map[string]string{"start_box": "(10,20)", "end_box": "(30,40)"},
		},
		{
			name:           "comma inside quoted value",
			input:          "type(content='hello, world')",
			expectedType:   "type",
			expectedParams: map[string]string{"content": "hello, world"},
		},
		{
			name:           "no params",
			input:          "wait()",
			expectedType:   "wait",
			expectedParams: map[string]string{},
		},
		{
			name:           "surrounding whitespace",
			input:          "  finished(content='done')  ",
			expectedType:   "finished",
			expectedParams: map[string]string{"content": "done"},
		},
		{
			name:           "bare point key rewritten",
			input:          "click(point='(5,6)')",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(5,6)"},
		},
		{
			name:           "start_point and end_point rewritten",
			input:          "drag(start_point='(1,2)', end_point='(3,4)')",
			expectedType:   "drag",
			expectedParams: map[string]string{"start_box": "(1,2)", "end_box": "(3,4)"},
		},
		{
			name:           "box token wrapper stripped",
			input:          "click(start_box='<|box_start|>(100,200)<|box_end|>')",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(100,200)"},
		},
		{
			name:           "bbox tag rewritten",
			input:          "click(start_box=<bbox>348 333 928 365</bbox>)",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(348,333,928,365)"},
		},
		{
			name:           "point tag rewritten",
			input:          "click(start_box=<point>100 200</point>)",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(100,200)"},
		},
		{
			name:           "duplicate key last wins",
			input:          "click(start_box='(1,1)', start_box='(2,2)')",
			expectedType:   "click",
			expectedParams: map[string]string{"start_box": "(2,2)"},
		},
		{
			name:           "multiline value",
			input:          "type(content='line1\nline2')",
			expectedType:   "type",
			expectedParams: map[string]string{"content": "line1\nline2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ParseCallString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, action.Type)
			assert.Equal(t, tt.expectedParams, action.Params)
		})
	}
}

func TestParseCallStringNotAFunctionCall(t *testing.T) {
	inputs := []string{
		"",
		"just some prose",
		"click start_box='(1,2)'",
		"(100,200)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCallString(input)
			require.Error(t, err)
			assert.Equal(t, "NOT_A_FUNCTION_CALL", app_errors.CodeOf(err))
		})
	}
}

func TestParseFunctionCall(t *testing.T) {
	action, err := ParseFunctionCall(types.FunctionCall{
		Name:      "click",
		Arguments: `{"start_box": "(100,200)", "button": "left"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "click", action.Type)
	assert.Equal(t, map[string]string{"start_box": "(100,200)", "button": "left"}, action.Params)
}

func TestParseFunctionCallEmptyArguments(t *testing.T) {
	for _, args := range []string{"", "null", "   "} {
		action, err := ParseFunctionCall(types.FunctionCall{Name: "wait", Arguments: args})
		require.NoError(t, err)
		assert.Equal(t, "wait", action.Type)
		assert.Empty(t, action.Params)
	}
}

func TestParseFunctionCallMalformed(t *testing.T) {
	_, err := ParseFunctionCall(types.FunctionCall{Name: "click", Arguments: `{"start_box": `})
	require.Error(t, err)
	assert.Equal(t, "MALFORMED_ARGUMENTS", app_errors.CodeOf(err))

	_, err = ParseFunctionCall(types.FunctionCall{Name: "click", Arguments: `[1,2]`})
	require.Error(t, err)
	assert.Equal(t, "MALFORMED_ARGUMENTS", app_errors.CodeOf(err))

	_, err = ParseFunctionCall(types.FunctionCall{Name: "", Arguments: ""})
	require.Error(t, err)
	assert.Equal(t, "NOT_A_FUNCTION_CALL", app_errors.CodeOf(err))
}
