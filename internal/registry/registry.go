package registry

import (
	"sort"
	"sync"

	"github.com/praetorian-inc/m365/modules"
	"github.com/praetorian-inc/m365/pkg/types"
)

type ModuleHeriarchy struct {
	Platform string
	Category string
}

type RegistryEntry struct {
	Metadata        modules.Metadata
	Options         []*types.Option
	Validate        modules.Validator
	Factory         modules.Factory
	ModuleHeriarchy ModuleHeriarchy
}

type ModuleRegistry struct {
	mu        sync.RWMutex
	modules   map[string]RegistryEntry       // command -> entry
	hierarchy map[string]map[string][]string // platform -> category -> []id
}

var Registry = NewModuleRegistry()

func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules:   make(map[string]RegistryEntry),
		hierarchy: make(map[string]map[string][]string),
	}
}

// Register adds a command to the default registry. It is called from the
// init functions of the command packages.
func Register(metadata modules.Metadata, opts []*types.Option, validate modules.Validator, factory modules.Factory) {
	Registry.Register(metadata, opts, validate, factory)
}

func (r *ModuleRegistry) Register(metadata modules.Metadata, opts []*types.Option, validate modules.Validator, factory modules.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	platform := string(metadata.Platform)
	category := metadata.Category()

	r.modules[metadata.Command()] = RegistryEntry{
		Metadata: metadata,
		Options:  opts,
		Validate: validate,
		Factory:  factory,
		ModuleHeriarchy: ModuleHeriarchy{
			Platform: platform,
			Category: category,
		},
	}

	if _, exists := r.hierarchy[platform]; !exists {
		r.hierarchy[platform] = make(map[string][]string)
	}

	for _, id := range r.hierarchy[platform][category] {
		if id == metadata.Id {
			return
		}
	}
	r.hierarchy[platform][category] = append(r.hierarchy[platform][category], metadata.Id)
	sort.Strings(r.hierarchy[platform][category])
}

// GetHierarchy returns a copy of the platform -> category -> id tree.
func GetHierarchy() map[string]map[string][]string {
	return Registry.GetHierarchy()
}

func (r *ModuleRegistry) GetHierarchy() map[string]map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]map[string][]string)
	for platform, categories := range r.hierarchy {
		result[platform] = make(map[string][]string)
		for category, ids := range categories {
			result[platform][category] = append([]string{}, ids...)
		}
	}

	return result
}

// GetRegistryEntry looks up a command by its full name, e.g.
// "aad approleassignment list".
func GetRegistryEntry(command string) (RegistryEntry, bool) {
	return Registry.GetRegistryEntry(command)
}

func (r *ModuleRegistry) GetRegistryEntry(command string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.modules[command]
	return entry, exists
}
