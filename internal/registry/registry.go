// Package registry provides a global registry of playable match-3 variants.
// Variants register themselves in init() and at configuration time, so the CLI
// and the SSH server can list and create them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is the interface the platform drives.
// Implementations contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the variant identifier (e.g., "classic"). Used for CLI
	// commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary shown by `match3 list`.
	Description() string

	// Reset starts a new session. Called once at start and again after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknown is returned by Create for ids nobody registered.
var ErrUnknown = errors.New("registry: unknown variant")

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a factory to the registry.
// Panics if the id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}
	factories[id] = f
}

// List returns information about all registered variants, sorted by ID.
// Titles come from fresh instances, so they follow configuration changes.
func List() []GameInfo {
	mu.RLock()
	ids := make([]string, 0, len(factories))
	fs := make(map[string]Factory, len(factories))
	for id, f := range factories {
		ids = append(ids, id)
		fs[id] = f
	}
	mu.RUnlock()

	sort.Strings(ids)
	result := make([]GameInfo, len(ids))
	for i, id := range ids {
		g := fs[id]()
		result[i] = GameInfo{ID: id, Title: g.Title(), Description: g.Description()}
	}
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
