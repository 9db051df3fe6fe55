package email

import (
	"fmt"
	"sort"
	"strings"
)

// Template is a named email with {{field}} placeholders.
type Template struct {
	Name    string
	Subject string
	HTML    string
	Text    string // Optional
}

// Rendered is a template compiled against one data record.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Registry holds the templates known to the process. It is built once at
// startup and only read afterwards.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates a registry from the given templates. A later template
// with the same name replaces an earlier one.
func NewRegistry(templates ...Template) *Registry {
	r := &Registry{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		r.templates[t.Name] = t
	}
	return r
}

// Get looks up a template by exact name.
func (r *Registry) Get(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render looks up name and compiles subject, HTML and text against data.
func (r *Registry) Render(name string, data map[string]any) (Rendered, error) {
	t, err := r.Get(name)
	if err != nil {
		return Rendered{}, err
	}
	out := Rendered{
		Subject: Compile(t.Subject, data),
		HTML:    Compile(t.HTML, data),
	}
	if t.Text != "" {
		out.Text = Compile(t.Text, data)
	}
	return out, nil
}

// =============================================================================
// Compiler
// =============================================================================

const (
	ifOpen  = "{{#if "
	ifClose = "{{/if}}"
)

// Compile substitutes {{key}} with the string form of data[key] for every key
// whose value is non-nil. Placeholders without a value stay in the output
// verbatim. Conditional sections {{#if key}}...{{/if}} are kept when key has
// a non-empty value and dropped otherwise. Compile is pure and never panics.
func Compile(tmpl string, data map[string]any) string {
	out := evalConditionals(tmpl, data)

	// Sorted keys keep substitution order, and therefore output, deterministic
	// even when a value itself contains another placeholder.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := data[k]
		if v == nil {
			continue
		}
		out = strings.ReplaceAll(out, "{{"+k+"}}", fmt.Sprint(v))
	}
	return out
}

// evalConditionals resolves sections innermost first so nesting works.
// Unbalanced or malformed markers are left in place and scanning continues
// past them.
func evalConditionals(s string, data map[string]any) string {
	from := 0
	for {
		rel := strings.Index(s[from:], ifClose)
		if rel < 0 {
			return s
		}
		end := from + rel
		start := strings.LastIndex(s[from:end], ifOpen)
		if start < 0 {
			from = end + len(ifClose)
			continue
		}
		start += from
		keyEnd := strings.Index(s[start+len(ifOpen):end], "}}")
		if keyEnd < 0 {
			from = end + len(ifClose)
			continue
		}
		key := strings.TrimSpace(s[start+len(ifOpen) : start+len(ifOpen)+keyEnd])
		body := s[start+len(ifOpen)+keyEnd+2 : end]

		var b strings.Builder
		b.WriteString(s[:start])
		if present(data, key) {
			b.WriteString(body)
		}
		b.WriteString(s[end+len(ifClose):])
		s = b.String()
	}
}

// present reports whether key has a value worth rendering a section for.
func present(data map[string]any, key string) bool {
	v, ok := data[key]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	default:
		return fmt.Sprint(val) != ""
	}
}
