package features

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// UnknownClass is the placeholder label a registry may train for
// out-of-vocabulary values. When present, it anchors the Apply fallback.
const UnknownClass = "unknown"

// Encoder is one categorical feature's fitted value→code mapping.
// Classes holds the vocabulary in code order, so Classes[i] carries code
// i; codes is the reverse index rebuilt whenever the vocabulary is set.
type Encoder struct {
	Classes []string `json:"classes"`

	codes map[string]int
}

// NewEncoder builds an encoder over an already-ordered vocabulary.
func NewEncoder(classes []string) *Encoder {
	e := &Encoder{Classes: classes}
	e.reindex()
	return e
}

// Fit assigns dense integer codes to the distinct values of a training
// corpus, in sorted order so refitting the same corpus yields the same
// codes.
func Fit(values []string) *Encoder {
	seen := make(map[string]bool, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)
	return NewEncoder(distinct)
}

func (e *Encoder) reindex() {
	e.codes = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		if _, dup := e.codes[c]; !dup {
			e.codes[c] = i
		}
	}
}

// Apply returns the fitted code for value. Out-of-vocabulary values take
// the UnknownClass code when the registry trained one, else the first
// vocabulary code, else 0. Apply never fails and is deterministic for
// the same input.
func (e *Encoder) Apply(value string) int {
	if code, ok := e.codes[value]; ok {
		return code
	}
	return e.Fallback()
}

// Fallback is the code Apply resolves out-of-vocabulary values to.
func (e *Encoder) Fallback() int {
	if code, ok := e.codes[UnknownClass]; ok {
		return code
	}
	if len(e.Classes) > 0 {
		return e.codes[e.Classes[0]]
	}
	return 0
}

// Inverse returns the class behind a code, for auditing fitted mappings.
func (e *Encoder) Inverse(code int) (string, bool) {
	if code < 0 || code >= len(e.Classes) {
		return "", false
	}
	return e.Classes[code], true
}

// Registry holds the fitted encoder per categorical feature. It is built
// at training time, immutable at inference time, and safe to share
// across goroutines once loaded.
type Registry struct {
	encoders map[string]*Encoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[string]*Encoder)}
}

// Fit fits an encoder over values and registers it under feature.
func (r *Registry) Fit(feature string, values []string) *Encoder {
	e := Fit(values)
	r.encoders[feature] = e
	return e
}

// Put registers an already-fitted encoder under feature.
func (r *Registry) Put(feature string, e *Encoder) {
	r.encoders[feature] = e
}

// Encoder returns the fitted encoder for feature, if one was trained.
func (r *Registry) Encoder(feature string) (*Encoder, bool) {
	e, ok := r.encoders[feature]
	return e, ok
}

// Features lists the fitted feature names in sorted order.
func (r *Registry) Features() []string {
	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of fitted encoders.
func (r *Registry) Len() int {
	return len(r.encoders)
}

// Save writes the registry artifact as indented JSON.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r.encoders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal encoder registry: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadRegistry reads a registry artifact and rebuilds the reverse
// indexes.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder registry: %w", err)
	}
	var encoders map[string]*Encoder
	if err := json.Unmarshal(data, &encoders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encoder registry: %w", err)
	}
	if encoders == nil {
		encoders = make(map[string]*Encoder)
	}
	for _, e := range encoders {
		e.reindex()
	}
	return &Registry{encoders: encoders}, nil
}
