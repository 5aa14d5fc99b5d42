package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ProviderKind identifies how an answer source is called.
type ProviderKind string

const (
	// KindBackend is the symptom-checker service under test, reached over HTTP.
	KindBackend ProviderKind = "backend"
	// KindDirectModel is a hosted model endpoint called directly with a
	// constrained output schema.
	KindDirectModel ProviderKind = "direct-model"
)

// ParseProviderKind maps a configured type string to a ProviderKind.
// Matching is by exact value or prefix, so variants like
// "direct-model/chat" keep working as the config format evolves.
func ParseProviderKind(s string) (ProviderKind, error) {
	switch {
	case s == string(KindBackend) || strings.HasPrefix(s, string(KindBackend)+"-") || strings.HasPrefix(s, string(KindBackend)+"/"):
		return KindBackend, nil
	case s == string(KindDirectModel) || strings.HasPrefix(s, string(KindDirectModel)+"/"):
		return KindDirectModel, nil
	default:
		return "", fmt.Errorf("unknown provider type %q", s)
	}
}

// ProviderSpec is one configured answer source. Kind-specific connection
// fields (base_url, model_id) live in Params and are decoded by each
// adapter with mapstructure.
type ProviderSpec struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Enabled *bool          `yaml:"enabled"`
	Params  map[string]any `yaml:",inline"`
}

// IsEnabled reports whether the provider takes part in a run. Providers
// default to enabled when the field is omitted.
func (p ProviderSpec) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Kind resolves the configured type string.
func (p ProviderSpec) Kind() (ProviderKind, error) {
	return ParseProviderKind(p.Type)
}

// DecodeParams decodes the kind-specific connection fields into out,
// which should be a pointer to a struct with mapstructure tags.
func (p ProviderSpec) DecodeParams(out any) error {
	if err := mapstructure.Decode(p.Params, out); err != nil {
		return fmt.Errorf("provider %q: %w", p.Name, err)
	}
	return nil
}

type providerFile struct {
	Models []ProviderSpec `yaml:"models"`
}

// LoadProviderSpecs reads the provider configuration from a YAML file.
// The file holds a list under the "models" key; names must be unique.
// Disabled entries are kept here and filtered by the runner.
func LoadProviderSpecs(path string) ([]ProviderSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("providers: %w", err)
	}

	var pf providerFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("providers: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(pf.Models))
	for i, spec := range pf.Models {
		if spec.Name == "" {
			return nil, fmt.Errorf("providers: entry %d has no name", i)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("providers: duplicate name %q", spec.Name)
		}
		seen[spec.Name] = true

		if _, err := spec.Kind(); err != nil {
			return nil, fmt.Errorf("providers: %q: %w", spec.Name, err)
		}
	}

	return pf.Models, nil
}
