package match

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Presets holds named expressions loaded from configuration
type Presets struct {
	compiler *Compiler
	matchers map[string]*Matcher
	mu       sync.RWMutex
}

// NewPresets compiles every named expression. Nothing is registered if any
// of them fails to compile.
func NewPresets(compiler *Compiler, expressions map[string]string) (*Presets, error) {
	if compiler == nil {
		compiler = NewCompiler()
	}
	p := &Presets{
		compiler: compiler,
		matchers: make(map[string]*Matcher, len(expressions)),
	}

	compiled := make(map[string]*Matcher, len(expressions))
	for name, expression := range expressions {
		m, err := compiler.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = m
	}
	maps.Copy(p.matchers, compiled)

	return p, nil
}

// Register adds or replaces a preset
func (p *Presets) Register(name, expression string) error {
	m, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.matchers[name] = m
	p.mu.Unlock()

	return nil
}

// Get returns the compiled preset
func (p *Presets) Get(name string) (*Matcher, error) {
	p.mu.RLock()
	m, ok := p.matchers[name]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return m, nil
}

// Names returns the preset names in sorted order
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Sorted(maps.Keys(p.matchers))
}

// Resolve builds one matcher from an optional preset and an optional
// expression, requiring both when both are given. It returns nil when
// neither is set.
func (p *Presets) Resolve(preset, expression string) (*Matcher, error) {
	var parts []string

	if preset = strings.TrimSpace(preset); preset != "" {
		m, err := p.Get(preset)
		if err != nil {
			return nil, err
		}
		parts = append(parts, m.Expression())
	}
	if expression = strings.TrimSpace(expression); expression != "" {
		parts = append(parts, expression)
	}

	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return p.compiler.Compile(parts[0])
	default:
		return p.compiler.Compile(Combine(parts...))
	}
}

// Combine joins expressions so that all of them must hold
func Combine(expressions ...string) string {
	wrapped := make([]string, 0, len(expressions))
	for _, e := range expressions {
		if e = strings.TrimSpace(e); e != "" {
			wrapped = append(wrapped, "("+e+")")
		}
	}
	return strings.Join(wrapped, " && ")
}
