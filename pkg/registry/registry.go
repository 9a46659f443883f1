// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// fieldAliases resolves answer keys that do not match a question id of the
// requested schema.
var fieldAliases = map[string]FieldKind{
	"locationmethod":     FieldLocationMethod,
	"location-method":    FieldLocationMethod,
	"howtosearch":        FieldLocationMethod,
	"neighborhood":       FieldNeighborhoods,
	"neighborhoods":      FieldNeighborhoods,
	"area":               FieldNeighborhoods,
	"cuisine":            FieldCuisines,
	"cuisines":           FieldCuisines,
	"foodtypes":          FieldCuisines,
	"food":               FieldCuisines,
	"price":              FieldPrice,
	"pricerange":         FieldPrice,
	"budget":             FieldPrice,
	"dietary":            FieldDietary,
	"diet":               FieldDietary,
	"preferences":        FieldDietary,
	"dietarypreferences": FieldDietary,
	"atmosphere":         FieldAtmosphere,
	"vibe":               FieldAtmosphere,
	"ambiance":           FieldAtmosphere,
	"distance":           FieldDistance,
	"radius":             FieldDistance,
	"distancemiles":      FieldDistance,
}

// Registry holds the known quiz schemas keyed by version.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*QuizSchema
}

func NewRegistry(schemas ...*QuizSchema) *Registry {
	r := &Registry{schemas: make(map[string]*QuizSchema)}
	for _, s := range schemas {
		r.Register(s)
	}
	return r
}

// Default returns a registry with both built-in quiz layouts.
func Default() *Registry {
	return NewRegistry(ClassicSchema(), FlowSchema())
}

func (r *Registry) Register(schema *QuizSchema) {
	if schema == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[schema.Version] = schema
}

func (r *Registry) Schema(version string) (*QuizSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[version]
	return s, ok
}

// Versions lists registered schema versions.
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.schemas))
	for v := range r.schemas {
		out = append(out, v)
	}
	return out
}

// Resolve maps an answer key to its canonical field. Question ids of the
// given schema win over the alias table; every registered schema is tried
// when version is empty or unknown.
func (r *Registry) Resolve(version, answerKey string) (FieldKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.schemas[version]; ok {
		if f, ok := s.fieldFor(answerKey); ok {
			return f, true
		}
	} else {
		for _, s := range r.schemas {
			if f, ok := s.fieldFor(answerKey); ok {
				return f, true
			}
		}
	}

	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(answerKey))]
	return f, ok
}

func (s *QuizSchema) fieldFor(id string) (FieldKind, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q.Field, true
		}
	}
	return "", false
}

// LoadSchema reads a quiz layout from disk and adapts it.
func LoadSchema(path string) (*QuizSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema detects which layout data uses and adapts it into a QuizSchema.
func ParseSchema(data []byte) (*QuizSchema, error) {
	var probe struct {
		Version   string          `json:"version"`
		Questions json.RawMessage `json:"questions"`
		Steps     json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}

	switch {
	case len(probe.Questions) > 0:
		var doc classicDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse classic quiz schema: %w", err)
		}
		return adaptClassic(doc)
	case len(probe.Steps) > 0:
		var doc flowDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse flow quiz schema: %w", err)
		}
		return adaptFlow(doc)
	}
	return nil, fmt.Errorf("quiz schema %q has neither questions nor steps", probe.Version)
}

func adaptClassic(doc classicDocument) (*QuizSchema, error) {
	version := doc.Version
	if version == "" {
		version = VersionClassic
	}

	out := &QuizSchema{Version: version}
	for _, q := range doc.Questions {
		field, err := fieldOf(q.Field, q.ID)
		if err != nil {
			return nil, err
		}

		mode := SelectSingle
		switch q.Type {
		case "multiple":
			mode = SelectMultiple
		case "slider", "number":
			mode = SelectNumeric
		}

		question := QuizQuestion{ID: q.ID, Prompt: q.Question, Field: field, Mode: mode}
		for _, o := range q.Options {
			question.Options = append(question.Options, QuizOption{Value: o.Value, Label: o.Label, Icon: o.Icon})
		}
		out.Questions = append(out.Questions, question)
	}
	return out, nil
}

func adaptFlow(doc flowDocument) (*QuizSchema, error) {
	version := doc.Version
	if version == "" {
		version = VersionFlow
	}

	out := &QuizSchema{Version: version}
	for _, step := range doc.Steps {
		field, err := fieldOf(step.Maps, step.Key)
		if err != nil {
			return nil, err
		}

		mode := SelectSingle
		if step.MultiSelect {
			mode = SelectMultiple
		}
		if step.Numeric {
			mode = SelectNumeric
		}

		question := QuizQuestion{ID: step.Key, Prompt: step.Title, Field: field, Mode: mode}
		for _, c := range step.Choices {
			question.Options = append(question.Options, QuizOption{
				Value: c.ID,
				Label: c.Text,
				Icon:  iconKey(c.IconComponent),
			})
		}
		out.Questions = append(out.Questions, question)
	}
	return out, nil
}

// fieldOf takes the explicit mapping when present, else infers it from the id.
func fieldOf(explicit, id string) (FieldKind, error) {
	if explicit != "" {
		switch f := FieldKind(explicit); f {
		case FieldLocationMethod, FieldNeighborhoods, FieldDistance, FieldCuisines,
			FieldPrice, FieldDietary, FieldAtmosphere:
			return f, nil
		}
		return "", fmt.Errorf("question %q maps to unknown field %q", id, explicit)
	}
	if f, ok := fieldAliases[strings.ToLower(id)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("question %q has no field mapping", id)
}

// iconKey turns a component reference like "UtensilsCrossed" into the
// kebab-case key used by the classic layout.
func iconKey(component string) string {
	var b strings.Builder
	for i, r := range component {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
