package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/contoroinc/depthai-ros/errors"
)

// Info holds metadata about a registered variant
type Info struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	UsesNN      bool   `json:"uses_nn"     yaml:"uses_nn"`
}

// RegistrationConfig describes one variant registration
type RegistrationConfig struct {
	Name        string  // Variant name as selected by the host (e.g. "RGBD")
	Factory     Factory // Creates the variant
	Description string  // Human-readable description
	UsesNN      bool    // Whether the variant reads the NN type
}

// Registry maps variant names to factories. Lookups ignore case.
// It is safe for concurrent use.
type Registry struct {
	variants map[string]*RegistrationConfig // keyed by upper-cased name
	mu       sync.RWMutex
}

// NewRegistry creates an empty variant registry
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]*RegistrationConfig),
	}
}

// RegisterWithConfig registers a variant. Names must be unique ignoring case.
func (r *Registry) RegisterWithConfig(config RegistrationConfig) error {
	if strings.TrimSpace(config.Name) == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterWithConfig", "variant name validation")
	}
	if config.Factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterWithConfig", "factory function validation")
	}

	key := registryKey(config.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.variants[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: variant '%s' conflicts with '%s'", errors.ErrAlreadyExists, config.Name, existing.Name),
			"Registry", "RegisterWithConfig", "duplicate variant check")
	}

	r.variants[key] = &config
	return nil
}

// Create instantiates the variant registered under name
func (r *Registry) Create(name string) (Variant, error) {
	r.mu.RLock()
	reg, exists := r.variants[registryKey(name)]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: '%s' (available: %s)", errors.ErrUnknownVariant, name, strings.Join(r.Names(), ", ")),
			"Registry", "Create", "variant lookup")
	}

	return reg.Factory(), nil
}

// Lookup returns the registration info for name
func (r *Registry) Lookup(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, exists := r.variants[registryKey(name)]
	if !exists {
		return Info{}, false
	}
	return reg.info(), true
}

// ListVariants returns every registration sorted by name
func (r *Registry) ListVariants() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.variants))
	for _, reg := range r.variants {
		result = append(result, reg.info())
	}
	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Names returns the registered variant names sorted
func (r *Registry) Names() []string {
	variants := r.ListVariants()
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name)
	}
	return names
}

func (c *RegistrationConfig) info() Info {
	return Info{
		Name:        c.Name,
		Description: c.Description,
		UsesNN:      c.UsesNN,
	}
}

func registryKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
