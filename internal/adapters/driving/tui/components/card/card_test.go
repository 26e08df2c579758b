package card

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/render"
)

func testNode(data *domain.PreviewData, policy domain.RenderPolicy) *render.Node {
	return render.Render(data, render.Options{Policy: policy})
}

func TestNew(t *testing.T) {
	c := New(nil)

	require.NotNil(t, c)
	assert.NotNil(t, c.styles)
	assert.Equal(t, DefaultWidth, c.Width())
	assert.False(t, c.Highlighted())
}

func TestCard_SetWidth_Minimum(t *testing.T) {
	c := New(nil)

	c.SetWidth(5)

	assert.Equal(t, 20, c.Width())
}

func TestCard_View_Empty(t *testing.T) {
	c := New(nil)

	assert.Equal(t, "", c.View(render.Empty()))
	assert.Equal(t, "", c.View(nil))
}

func TestCard_View_TitleAndDescription(t *testing.T) {
	c := New(nil)
	node := testNode(&domain.PreviewData{
		Title:       "Example Post",
		Description: "A short description",
	}, domain.PolicyStrict)

	out := c.View(node)

	assert.Contains(t, out, "Example Post")
	assert.Contains(t, out, "A short description")
	assert.NotContains(t, out, "img")
}

func TestCard_View_WithImage(t *testing.T) {
	c := New(nil)
	node := testNode(&domain.PreviewData{
		Title: "Example",
		Image: &domain.PreviewImage{URL: "https://example.com/a.png", Width: 200, Height: 100},
	}, domain.PolicyStrict)

	out := c.View(node)

	assert.Contains(t, out, "img")
	assert.Contains(t, out, "Example")
}

func TestCard_View_FitsWidth(t *testing.T) {
	c := New(nil)
	c.SetWidth(40)
	node := testNode(&domain.PreviewData{
		Title:       strings.Repeat("word ", 40),
		Description: strings.Repeat("more ", 60),
		Image:       &domain.PreviewImage{URL: "x", Width: 50, Height: 100},
	}, domain.PolicyStrict)

	out := c.View(node)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, "line too wide: %q", line)
	}
}

func TestCard_View_Highlight(t *testing.T) {
	c := New(nil)
	node := testNode(&domain.PreviewData{Title: "Example"}, domain.PolicyStrict)

	plain := c.View(node)
	c.SetHighlight(true)
	highlighted := c.View(node)

	assert.True(t, c.Highlighted())
	assert.NotEqual(t, plain, highlighted)
}

func TestCard_View_LooseFallbacks(t *testing.T) {
	c := New(nil)
	node := testNode(&domain.PreviewData{Link: "https://example.com", Domain: "example.com"}, domain.PolicyLoose)

	out := c.View(node)

	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "example.com")
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		maxLines int
		expected []string
	}{
		{
			name:     "fits on one line",
			text:     "short",
			width:    10,
			maxLines: 2,
			expected: []string{"short"},
		},
		{
			name:     "wraps within limit",
			text:     "one two three",
			width:    8,
			maxLines: 2,
			expected: []string{"one two", "three"},
		},
		{
			name:     "truncated with ellipsis",
			text:     "one two three four five",
			width:    8,
			maxLines: 2,
			expected: []string{"one two", "three…"},
		},
		{
			name:     "no limit",
			text:     "one two three four",
			width:    7,
			maxLines: 0,
			expected: []string{"one two", "three", "four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.text, tt.width, tt.maxLines)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClamp_CutsLongLastLine(t *testing.T) {
	lines := Clamp("abcdefgh abcdefgh abcdefgh", 8, 1)

	require.Len(t, lines, 1)
	assert.Equal(t, "abcdefg…", lines[0])
}

func TestPlain(t *testing.T) {
	node := testNode(&domain.PreviewData{Title: "Title", Description: "Body"}, domain.PolicyStrict)

	assert.Equal(t, "Title\nBody", Plain(node))
	assert.Equal(t, "", Plain(render.Empty()))
}
