package core

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
)

// State is the engine's position in the swap state machine.
type State uint8

const (
	StateIdle      State = iota // Accepting swaps
	StateSwapping               // Swap applied, first scan pending
	StateResolving              // At least one pass matched; cascade running
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapping:
		return "swapping"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Config describes a game session.
type Config struct {
	Size         int      // Board side in cells
	TileDistance float64  // World-space distance between neighbouring tiles
	TileTypes    []string // Tile ids in play
	Scoring      Scoring
	Seed         int64 // RNG seed; equal seeds and swaps replay identically
}

// Validate checks the configuration before a board is built.
func (c Config) Validate() error {
	_, err := c.registry()
	return err
}

// registry checks the configuration and builds its tile registry.
func (c Config) registry() (*Registry, error) {
	if c.Size < 1 {
		return nil, fmt.Errorf("match3: board size %d: %w", c.Size, ErrInvalidSize)
	}
	return NewRegistry(c.TileTypes...)
}

// Outcome summarises a finished turn.
type Outcome struct {
	Swap       Swap
	Combos     int       // Number of passes that matched
	ScoreDelta int       // Points earned by the turn
	Passes     [][]Match // Matches found in each pass, in order
	Reverted   bool      // The swap produced no match and was undone
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output of scored matches.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithListener subscribes a listener at construction time.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, l)
	}
}

// WithRefiller replaces the random refill policy used during cascades.
// The initial board is still built by the seeded RefillPolicy.
func WithRefiller(r Refiller) Option {
	return func(e *Engine) {
		e.refiller = r
	}
}

// WithBoard starts the session from a given layout instead of a generated one.
// The layout is copied. It must match the configured size and use registered types.
func WithBoard(b *Board) Option {
	return func(e *Engine) {
		e.initial = b.Clone()
	}
}

// turn is the in-flight swap and its cascade bookkeeping.
type turn struct {
	swap       Swap
	state      State
	combo      int
	scoreDelta int
	passes     [][]Match
}

// Engine owns the board and runs swaps and their cascades.
// It is safe for concurrent use; the board is only mutated under the engine lock.
type Engine struct {
	mu sync.Mutex

	board    *Board
	registry *Registry
	policy   *RefillPolicy
	refiller Refiller
	scoring  Scoring
	score    int
	swaps    int
	best     int // Best combo reached in this session
	turn     *turn

	initial   *Board
	logger    *log.Logger
	listeners []Listener
}

// BuildBoard creates an engine with a stable random board using default scoring.
func BuildBoard(size int, tileTypes []string, seed int64) (*Engine, error) {
	return New(Config{
		Size:         size,
		TileDistance: 1,
		TileTypes:    tileTypes,
		Scoring:      DefaultScoring(),
		Seed:         seed,
	})
}

// New validates cfg and creates an engine with a stable board.
func New(cfg Config, opts ...Option) (*Engine, error) {
	registry, err := cfg.registry()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		registry: registry,
		policy:   NewRefillPolicy(registry, rand.New(rand.NewSource(cfg.Seed))),
		scoring:  cfg.Scoring,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.refiller == nil {
		e.refiller = e.policy
	}

	if e.initial != nil {
		if err := e.checkLayout(e.initial, cfg.Size); err != nil {
			return nil, err
		}
		e.board = e.initial
		e.board.tileDistance = cfg.TileDistance
		e.initial = nil
	} else {
		e.board = NewBoard(cfg.Size, cfg.TileDistance)
		e.policy.FillBoard(e.board)
	}

	return e, nil
}

// checkLayout verifies an injected board against the configuration.
func (e *Engine) checkLayout(b *Board, size int) error {
	if b.Size() != size {
		return fmt.Errorf("match3: layout is %dx%d, want %dx%d: %w",
			b.Size(), b.Size(), size, size, ErrInvalidSize)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if t := b.Get(P(x, y)); !e.registry.Contains(t) {
				return fmt.Errorf("match3: layout cell %v holds unknown tile %q: %w", P(x, y), t, ErrInvalidLayout)
			}
		}
	}
	if !Stable(b) {
		return fmt.Errorf("match3: layout holds a run: %w", ErrInvalidLayout)
	}
	return nil
}

// Subscribe adds a listener for engine events.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// emit delivers events to a snapshot of the listeners. Must be called without the lock held.
func (e *Engine) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	e.mu.Lock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

// AttemptSwap exchanges the tiles at a and b and resolves the whole cascade.
// Returns ErrInvalidSwap, ErrPositionLocked or ErrTurnInFlight if the swap was refused,
// and ErrNoMatch if it was applied but reverted.
func (e *Engine) AttemptSwap(a, b Position) (Outcome, error) {
	if err := e.BeginSwap(a, b); err != nil {
		return Outcome{Swap: Swap{A: a, B: b}}, err
	}

	for {
		out, done := e.Advance()
		if !done {
			continue
		}
		if out.Reverted {
			return out, fmt.Errorf("match3: swap %v: %w", out.Swap, ErrNoMatch)
		}
		return out, nil
	}
}

// BeginSwap validates and applies a swap, locking both positions.
// The caller then drives the turn with Advance, one pass per call, which lets a
// presentation layer animate between passes.
func (e *Engine) BeginSwap(a, b Position) error {
	e.mu.Lock()
	swap := Swap{A: a, B: b}
	err := e.beginLocked(swap)
	e.mu.Unlock()

	if err != nil {
		e.emit([]Event{SwapRejectedEvent{Swap: swap, Reason: err}})
		return err
	}
	return nil
}

func (e *Engine) beginLocked(swap Swap) error {
	a, b := swap.A, swap.B
	if !e.board.InBounds(a) || !e.board.InBounds(b) {
		return fmt.Errorf("match3: swap %v out of bounds: %w", swap, ErrInvalidSwap)
	}
	if !Adjacent(a, b) {
		return fmt.Errorf("match3: swap %v not adjacent: %w", swap, ErrInvalidSwap)
	}
	if e.turn != nil {
		held := e.turn.swap
		if a == held.A || a == held.B || b == held.A || b == held.B {
			return fmt.Errorf("match3: swap %v: %w", swap, ErrPositionLocked)
		}
		return fmt.Errorf("match3: swap %v while %v resolves: %w", swap, held, ErrTurnInFlight)
	}

	e.board.Swap(a, b)
	e.turn = &turn{swap: swap, state: StateSwapping}
	return nil
}

// Advance runs one pass of the in-flight turn: scan, then either resolve the matches
// or finish the turn. done is true once the turn is over and the engine is idle again;
// the returned Outcome is only complete at that point. With no turn in flight Advance
// returns done immediately.
func (e *Engine) Advance() (out Outcome, done bool) {
	e.mu.Lock()
	out, done, events := e.advanceLocked()
	e.mu.Unlock()

	e.emit(events)
	return out, done
}

func (e *Engine) advanceLocked() (Outcome, bool, []Event) {
	t := e.turn
	if t == nil {
		return Outcome{}, true, nil
	}

	matches := ScanBoard(e.board)
	if len(matches) == 0 {
		e.turn = nil
		out := Outcome{
			Swap:       t.swap,
			Combos:     t.combo,
			ScoreDelta: t.scoreDelta,
			Passes:     t.passes,
		}

		if t.state == StateSwapping {
			e.board.Swap(t.swap.A, t.swap.B)
			out.Reverted = true
			return out, true, []Event{SwapRevertedEvent{Swap: t.swap}}
		}

		e.swaps++
		if t.combo > e.best {
			e.best = t.combo
		}
		return out, true, []Event{CascadeCompleteEvent{
			Swap:       t.swap,
			Combos:     t.combo,
			ScoreDelta: t.scoreDelta,
			Score:      e.score,
		}}
	}

	t.state = StateResolving
	t.combo++
	t.passes = append(t.passes, matches)

	events := make([]Event, 0, len(matches)+1)
	for _, m := range matches {
		delta := e.scoring.Delta(m.Size(), t.combo)
		t.scoreDelta += delta
		e.score += delta

		px, py := m.PivotWorld(e.board)
		events = append(events, MatchResolvedEvent{
			Match:  m,
			Combo:  t.combo,
			Score:  delta,
			PivotX: px,
			PivotY: py,
		})
		e.logger.Debug("scored", "delta", delta, "combo", t.combo, "size", m.Size(), "axis", m.Axis, "score", e.score)
	}

	gravity := ResolveGravity(e.board, clearedSet(matches), e.refiller)
	events = append(events, TilesMovedEvent{
		Combo:  t.combo,
		Moves:  gravity.Moves,
		Spawns: gravity.Spawns,
	})

	return Outcome{Swap: t.swap, Combos: t.combo, ScoreDelta: t.scoreDelta}, false, events
}

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.turn == nil {
		return StateIdle
	}
	return e.turn.state
}

// InFlight returns true while a turn is being resolved.
func (e *Engine) InFlight() bool {
	return e.State() != StateIdle
}

// IsLocked returns true if p is held by the in-flight turn.
func (e *Engine) IsLocked(p Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn != nil && (e.turn.swap.A == p || e.turn.swap.B == p)
}

// GetTile returns the tile type at p, or NoTile if p is off the board.
func (e *Engine) GetTile(p Position) TileType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Get(p)
}

// Snapshot returns a copy of the board contents, top row first.
func (e *Engine) Snapshot() [][]TileType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Rows()
}

// GetBoardSnapshot is an alias for Snapshot.
func (e *Engine) GetBoardSnapshot() [][]TileType {
	return e.Snapshot()
}

// Board returns a copy of the board.
func (e *Engine) Board() *Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Clone()
}

// Registry returns the tile types in play.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Score returns the cumulative score of the session.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Swaps returns the number of scoring swaps made in the session.
func (e *Engine) Swaps() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.swaps
}

// BestCombo returns the longest cascade reached in the session.
func (e *Engine) BestCombo() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.best
}

// Moves returns the swaps that would produce a match on the current board.
// Empty while a turn is in flight.
func (e *Engine) Moves() []Swap {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.turn != nil {
		return nil
	}
	return FindMoves(e.board)
}
