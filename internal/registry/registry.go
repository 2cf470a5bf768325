// Package registry provides a global registry for test patterns.
// Patterns register themselves in init() functions, so hosts can list and
// draw them by name without knowing where they are defined.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Murat2283plus/maliao/internal/core"
)

// Pattern is a static image used to check the wiring and colors of a display.
type Pattern interface {
	// ID returns the name used on the console and CLI (e.g., "checkerboard").
	ID() string

	// Title returns a human-readable description.
	Title() string

	// Draw paints the pattern over the whole frame.
	Draw(dst *core.Frame)
}

// PatternInfo contains metadata about a registered pattern.
type PatternInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a pattern.
type Factory func() Pattern

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pattern factory to the registry.
// Panics if a pattern with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pattern %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered patterns, sorted by ID.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PatternInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// IDs returns the sorted IDs of all registered patterns.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// Create instantiates a pattern by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Pattern, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pattern %q", id)
	}

	return f(), nil
}

// Exists checks if a pattern with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
