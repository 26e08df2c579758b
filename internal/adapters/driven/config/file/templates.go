package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// defaultTemplates are written on first use and used when a file is missing.
// Templates receive the card fields: .Title .Description .Link .Domain .Image.
var defaultTemplates = map[string]string{
	driven.TemplatePlain: `{{if .Title}}{{.Title}}
{{end}}{{if .Description}}{{.Description}}
{{end}}{{if .Link}}{{.Link}}
{{end}}`,

	driven.TemplateMarkdown: `{{if .Link}}[{{or .Title .Link}}]({{.Link}}){{else}}**{{.Title}}**{{end}}
{{if .Description}}
> {{.Description}}
{{end}}{{if .Image}}
![]({{.Image.URL}})
{{end}}`,
}

// TemplateStore loads output templates from user-editable files on disk.
//
// The directory is created lazily on first Load, with the default templates
// written out so users have something to edit.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.linkcard/templates/.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template source for name.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	def, known := defaultTemplates[name]
	if s.initErr != nil && known {
		return def, nil
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil {
		if known {
			return def, nil
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Names returns the built-in template names, sorted.
func (s *TemplateStore) Names() []string {
	names := make([]string, 0, len(defaultTemplates))
	for name := range defaultTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// initialise creates the directory and writes missing default files.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range defaultTemplates {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *TemplateStore) path(name string) string {
	return filepath.Join(s.dir, name+".tmpl")
}
