package squiggle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoConfigs = `{
    "configurations": [
        {
            "name": "Mac",
            "includePath": ["/mac"]
        },
        {
            "name" : "Linux",
            "includePath": ["/linux"]
        }
    ],
    "version": 4
}`

func TestFindWindow(t *testing.T) {
	w, err := FindWindow(twoConfigs, "Mac")
	require.NoError(t, err)
	assert.Equal(t, `"Mac"`, strings.TrimSpace(w.Text[:strings.Index(w.Text, ",")]))
	assert.Contains(t, w.Text, `"/mac"`)
	assert.NotContains(t, w.Text, "Linux")
	assert.False(t, strings.HasSuffix(strings.TrimSpace(w.Text), "}"))
	assert.Equal(t, twoConfigs[w.Start:w.Start+len(w.Text)], w.Text)

	last, err := FindWindow(twoConfigs, "Linux")
	require.NoError(t, err)
	assert.Equal(t, len(twoConfigs), last.Start+len(last.Text))
	assert.Contains(t, last.Text, `"/linux"`)
	assert.NotContains(t, last.Text, `"/mac"`)
}

func TestFindWindow_Errors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, err := FindWindow(twoConfigs, "Win32")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("name not first key", func(t *testing.T) {
		_, err := FindWindow(`{"configurations": [{"includePath": [], "name": "A"}]}`, "A")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("nested name", func(t *testing.T) {
		_, err := FindWindow(`{"configurations": [{"name": "A", "x": {"name": "B"}}]}`, "A")
		assert.ErrorIs(t, err, ErrAmbiguousBoundary)
	})
}

func TestFindWindow_SpecialNames(t *testing.T) {
	text := `{"configurations": [{"name": "a.b(c)*", "x": 1}, {"name": "say \"hi\"", "y": 2}]}`

	w, err := FindWindow(text, "a.b(c)*")
	require.NoError(t, err)
	assert.Contains(t, w.Text, `"x": 1`)
	assert.NotContains(t, w.Text, `"y"`)

	w, err = FindWindow(text, `say "hi"`)
	require.NoError(t, err)
	assert.Contains(t, w.Text, `"y": 2`)
}

func TestWindow_Abs(t *testing.T) {
	w := Window{Start: 10}
	assert.Equal(t, Span{Start: 13, End: 20}, w.Abs(Span{Start: 3, End: 10}))
}
