// Package sim plays many seeded match-3 games in parallel with a random
// swap-picking bot and summarizes the scores and cascade depths they reach.
// It doubles as a soak test: every turn is checked to leave a full, stable board.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/charmbracelet/log"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ErrInvariant reports a turn that left the board in a state the rules forbid.
var ErrInvariant = errors.New("sim: board invariant violated")

// Options controls a simulation run.
type Options struct {
	Engine   m3.Config // Board setup; the seed is replaced per game
	Games    int
	MaxSwaps int   // Per game; a game also ends when no move is left
	Workers  int   // Defaults to GOMAXPROCS
	Seed     int64 // Base seed every game seed is derived from
	Progress io.Writer
	Logger   *log.Logger
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Index     int
	Seed      int64
	Score     int
	Swaps     int
	BestCombo int
	Combos    []int // Passes per swap, in play order
	NoMoves   bool  // Ended because no swap could match
}

func (o *Options) validate() error {
	if o.Games < 1 {
		return fmt.Errorf("sim: games must be positive, got %d", o.Games)
	}
	if o.MaxSwaps < 1 {
		return fmt.Errorf("sim: max swaps must be positive, got %d", o.MaxSwaps)
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	o.Workers = min(o.Workers, o.Games)
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o.Engine.Validate()
}

// Run plays opts.Games games and returns their report. Results do not depend
// on the worker count: each game's seed is derived from its index.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	results := make([]GameResult, opts.Games)
	jobs := make(chan int)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMu.Unlock()
	}

	bar := pb.New(opts.Games)
	bar.SetWriter(opts.Progress)
	bar.Start()

	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := PlayGame(opts.Engine, i, SeedFor(opts.Seed, i), opts.MaxSwaps)
				if err != nil {
					fail(err)
					continue
				}
				results[i] = r
				bar.Increment()
			}
		}()
	}

feed:
	for i := 0; i < opts.Games; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := Summarize(results)
	rep.Seed = opts.Seed
	rep.Elapsed = used
	opts.Logger.Info("simulation done", "games", rep.Games, "swaps", rep.TotalSwaps, "mean", rep.ScoreMean, "elapsed", used)
	return rep, nil
}

// PlayGame plays one game, picking a random matching swap each turn.
func PlayGame(cfg m3.Config, index int, seed int64, maxSwaps int) (GameResult, error) {
	cfg.Seed = seed
	e, err := m3.New(cfg)
	if err != nil {
		return GameResult{}, err
	}
	if err := checkBoard(e.Board()); err != nil {
		return GameResult{}, fmt.Errorf("game %d (seed %d) initial board: %w", index, seed, err)
	}

	rng := rand.New(rand.NewSource(seed))
	res := GameResult{Index: index, Seed: seed}
	for res.Swaps < maxSwaps {
		moves := e.Moves()
		if len(moves) == 0 {
			res.NoMoves = true
			break
		}
		s := moves[rng.Intn(len(moves))]
		out, err := e.AttemptSwap(s.A, s.B)
		if err != nil {
			return res, fmt.Errorf("game %d (seed %d) swap %v: %w: %w", index, seed, s, ErrInvariant, err)
		}
		if err := checkBoard(e.Board()); err != nil {
			return res, fmt.Errorf("game %d (seed %d) after swap %v: %w", index, seed, s, err)
		}
		res.Swaps++
		res.Combos = append(res.Combos, out.Combos)
	}

	res.Score = e.Score()
	res.BestCombo = e.BestCombo()
	return res, nil
}

func checkBoard(b *m3.Board) error {
	if !b.Full() {
		return fmt.Errorf("%w: board has vacant cells", ErrInvariant)
	}
	if !m3.Stable(b) {
		return fmt.Errorf("%w: board holds a run", ErrInvariant)
	}
	return nil
}

const mask63 = uint64(1<<63) - 1

// SeedFor derives the seed of game i from the base seed.
// Always non-negative.
func SeedFor(base int64, i int) int64 {
	return int64(mix63(uint64(base) + uint64(i)*0x9E3779B97F4A7C15))
}

func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
