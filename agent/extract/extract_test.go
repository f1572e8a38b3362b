package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func TestStructuredDirectParse(t *testing.T) {
	t.Parallel()

	out, err := Structured[testResult](`{"success": true}`)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestStructuredEmbeddedObject(t *testing.T) {
	t.Parallel()

	out, err := Structured[testResult](`Sure! Here you go: {"success": true} Thanks.`)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestStructuredMarkdownFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"success\": true, \"message\": \"done\"}\n```"
	out, err := Structured[testResult](raw)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "done", out.Message)
}

func TestStructuredMultilineObject(t *testing.T) {
	t.Parallel()

	raw := "Here is the result:\n{\n  \"success\": true,\n  \"message\": \"ok\"\n}\nLet me know if you need anything else."
	out, err := Structured[testResult](raw)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "ok", out.Message)
}

func TestStructuredNoPayload(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"plain prose":      "I could not find anything relevant, sorry!",
		"empty":            "",
		"whitespace":       "   \n\t ",
		"unclosed object":  `{"success": true`,
		"reversed braces":  `} nothing here {`,
		"malformed object": `result: {success: yes}`,
	}

	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Structured[testResult](raw)
			require.ErrorIs(t, err, ErrNoStructuredPayload)
		})
	}
}

func TestStructuredGreedyBraceSpan(t *testing.T) {
	t.Parallel()

	// The extraction spans the outermost first '{' to the last '}'; nested
	// objects inside survive intact.
	raw := `prefix {"success": true, "message": "a}b"} suffix`
	out, err := Structured[testResult](raw)
	require.NoError(t, err)
	assert.True(t, out.Success)
}
