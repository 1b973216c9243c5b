package prompt

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"text/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// fallbackKey is the ultimate fallback when no template matches the
// context. The SaaS standard template is the most general of the set.
const fallbackKey = "saas_standard"

type entry struct {
	tmpl   Template
	parsed *template.Template
}

// Manager is the template registry. Registration is an administrative
// operation; selection and rendering happen on the request path.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewManager creates a Manager preloaded with the default template set.
// All templates are parsed at construction, so a malformed template is a
// startup error rather than a render-time surprise.
func NewManager() (*Manager, error) {
	m := &Manager{entries: make(map[string]entry)}

	for key, tmpl := range defaultTemplates() {
		if err := m.register(key, tmpl); err != nil {
			return nil, fmt.Errorf("default template %q: %w", key, err)
		}
	}

	if _, ok := m.entries[fallbackKey]; !ok {
		return nil, fmt.Errorf("fallback template %q missing from defaults", fallbackKey)
	}

	return m, nil
}

// Key returns the registry key for a (domain, generation type) pair.
func Key(domain, generationType string) string {
	return domain + "_" + generationType
}

// Register adds or replaces a template under its (domain, generation
// type) key. In-flight renders keep the template value they already
// looked up.
func (m *Manager) Register(tmpl Template) error {
	return m.register(Key(string(tmpl.Domain), string(tmpl.GenerationType)), tmpl)
}

func (m *Manager) register(key string, tmpl Template) error {
	if !tmpl.Domain.Valid() {
		return fmt.Errorf("invalid domain %q", tmpl.Domain)
	}
	if !tmpl.GenerationType.Valid() {
		return fmt.Errorf("invalid generation type %q", tmpl.GenerationType)
	}
	if tmpl.Name == "" {
		return fmt.Errorf("template name is required")
	}

	parsed, err := template.New(key).Parse(tmpl.UserPromptTemplate)
	if err != nil {
		return fmt.Errorf("parse user prompt template: %w", err)
	}
	if tmpl.Version == "" {
		tmpl.Version = "1.0"
	}

	m.mu.Lock()
	m.entries[key] = entry{tmpl: tmpl, parsed: parsed}
	m.mu.Unlock()

	log.Debug().Str("template", tmpl.Name).Str("key", key).Msg("registered prompt template")
	return nil
}

// LoadFile registers templates from a YAML overlay file.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template file: %w", err)
	}

	var file struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse template file: %w", err)
	}

	for _, tmpl := range file.Templates {
		if err := m.Register(tmpl); err != nil {
			return fmt.Errorf("template %q: %w", tmpl.Name, err)
		}
	}

	log.Info().Int("count", len(file.Templates)).Str("path", path).Msg("loaded template overlays")
	return nil
}

// Select returns the best-matching template for the context. Lookup
// order: exact (domain, type), then the domain's standard template, then
// the generic template for the generation type, then the fixed fallback.
// Select never fails.
func (m *Manager) Select(ctx Context) Template {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := []string{
		Key(string(ctx.Domain), string(ctx.GenerationType)),
		Key(string(ctx.Domain), "standard"),
		string(ctx.GenerationType),
	}
	for _, key := range keys {
		if e, ok := m.entries[key]; ok {
			return e.tmpl
		}
	}

	return m.entries[fallbackKey].tmpl
}

// Render selects a template for the context and substitutes the context
// into its user prompt body. Sections guarded by absent fields (personas,
// business rules, additional context) are omitted from the output.
func (m *Manager) Render(ctx Context) (*Rendered, error) {
	m.mu.RLock()
	keys := []string{
		Key(string(ctx.Domain), string(ctx.GenerationType)),
		Key(string(ctx.Domain), "standard"),
		string(ctx.GenerationType),
	}
	e, ok := entry{}, false
	for _, key := range keys {
		if e, ok = m.entries[key]; ok {
			break
		}
	}
	if !ok {
		e = m.entries[fallbackKey]
	}
	m.mu.RUnlock()

	data := struct {
		Title              string
		Description        string
		AcceptanceCriteria string
		Domain             string
		Complexity         string
		Personas           []string
		BusinessRules      []string
		AdditionalContext  map[string]any
	}{
		Title:              ctx.Title,
		Description:        ctx.Description,
		AcceptanceCriteria: ctx.AcceptanceCriteria,
		Domain:             string(ctx.Domain),
		Complexity:         string(ctx.Complexity),
		Personas:           ctx.Personas,
		BusinessRules:      ctx.BusinessRules,
		AdditionalContext:  ctx.AdditionalContext,
	}

	var buf bytes.Buffer
	if err := e.parsed.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %q: %w", e.tmpl.Name, err)
	}

	return &Rendered{
		SystemPrompt:    e.tmpl.SystemPrompt,
		UserPrompt:      buf.String(),
		ExpectedFormat:  e.tmpl.ExpectedFormat,
		QualityCriteria: e.tmpl.QualityCriteria,
		TemplateName:    e.tmpl.Name,
		EstimatedTokens: e.tmpl.TokenEstimate,
	}, nil
}
