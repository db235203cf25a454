package core

// Event is a notification sent from the engine to presentation and scoring listeners.
type Event interface {
	engineEvent()
}

// Listener receives engine events. Listeners run after the engine has released its
// lock, so they may query the engine or request another swap.
type Listener func(Event)

// MatchResolvedEvent is sent once per match in a pass, before the tiles fall.
// A cell shared by two crossing matches is scored in both events.
type MatchResolvedEvent struct {
	Match  Match
	Combo  int     // 1-based pass index within the cascade
	Score  int     // Points awarded for this match
	PivotX float64 // World position of the pivot before removal
	PivotY float64
}

func (MatchResolvedEvent) engineEvent() {}

// TilesMovedEvent is sent once per pass after matched tiles were removed and the board refilled.
type TilesMovedEvent struct {
	Combo  int
	Moves  []Move
	Spawns []Spawn
}

func (TilesMovedEvent) engineEvent() {}

// SwapRejectedEvent is sent when a swap request is refused without touching the board.
type SwapRejectedEvent struct {
	Swap   Swap
	Reason error
}

func (SwapRejectedEvent) engineEvent() {}

// SwapRevertedEvent is sent when a swap produced no match and was undone.
type SwapRevertedEvent struct {
	Swap Swap
}

func (SwapRevertedEvent) engineEvent() {}

// CascadeCompleteEvent is sent when the board is stable again after a scoring swap.
type CascadeCompleteEvent struct {
	Swap       Swap
	Combos     int
	ScoreDelta int
	Score      int // Cumulative game score
}

func (CascadeCompleteEvent) engineEvent() {}
