package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain https", "look https://example.com/post?id=1 now", "https://example.com/post?id=1"},
		{"http kept", "http://example.com", "http://example.com"},
		{"scheme-less gets https", "see example.com/path", "https://example.com/path"},
		{"first link wins", "a.example and b.example", "https://a.example"},
		{"trailing punctuation dropped", "visit https://example.com/x.", "https://example.com/x"},
		{"email only", "mail me at jane@example.com", ""},
		{"email then link", "jane@example.com wrote about https://blog.example/post", "https://blog.example/post"},
		{"no link", "just words here", ""},
		{"empty", "", ""},
		{"host with port", "http://127.0.0.1:8080/page", "http://127.0.0.1:8080/page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURL(tt.text))
		})
	}
}

func TestStripEmails(t *testing.T) {
	assert.Equal(t, "write to  or ", StripEmails("write to a.b+c@mail.example.com or x@y.io"))
	assert.Equal(t, "no emails", StripEmails("no emails"))
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "example.com", DomainOf("https://www.Example.com/a"))
	assert.Equal(t, "blog.example.com", DomainOf("https://blog.example.com:8443/"))
	assert.Equal(t, "", DomainOf("://bad"))
}

func TestResolveReference(t *testing.T) {
	base, _ := url.Parse("https://example.com/posts/1")

	assert.Equal(t, "https://example.com/img/a.png", resolveReference(base, "/img/a.png"))
	assert.Equal(t, "https://example.com/posts/b.png", resolveReference(base, "b.png"))
	assert.Equal(t, "https://cdn.example/c.png", resolveReference(base, "https://cdn.example/c.png"))
	assert.Equal(t, "", resolveReference(base, "  "))
	assert.Equal(t, "d.png", resolveReference(nil, "d.png"))
}
