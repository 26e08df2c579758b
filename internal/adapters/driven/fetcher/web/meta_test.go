package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMetaTags(t *testing.T) {
	page := []byte(`<!doctype html><html><head>
<title> Page title </title>
<meta name="description" content="Plain description">
<meta property="og:title" content="OG title">
<meta property="og:description" content="OG description">
<meta property="og:image" content="/cover.png">
<meta property="og:image" content="/second.png">
<meta name="twitter:title" content="Twitter title">
<meta name="twitter:image" content="/tw.png">
</head><body><title>not this one</title></body></html>`)

	meta := extractMetaTags(page)

	assert.Equal(t, "Page title", meta.Title)
	assert.Equal(t, "Plain description", meta.Description)
	assert.Equal(t, "OG title", meta.OGTitle)
	assert.Equal(t, "OG description", meta.OGDescription)
	assert.Equal(t, "/cover.png", meta.OGImage)
	assert.Equal(t, "Twitter title", meta.TwitterTitle)
	assert.Equal(t, "/tw.png", meta.TwitterImage)
}

func TestExtractMetaTags_Empty(t *testing.T) {
	assert.Equal(t, metaTags{}, extractMetaTags([]byte("")))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", coalesce("", "  ", "b", "c"))
	assert.Equal(t, "", coalesce())
}
