package sim

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang = language.English

// CI is a confidence interval.
type CI struct {
	Lo float64
	Hi float64
}

// Report summarizes a simulation run.
type Report struct {
	Games      int
	Seed       int64
	TotalSwaps int
	NoMoveEnds int // Games that ran out of moves before the swap limit

	ScoreMean float64
	ScoreStd  float64
	ScoreP50  float64
	ScoreP95  float64
	ScoreMax  int
	ScoreCI   CI // 95% interval for the mean score

	SwapsMean float64
	BestCombo int
	Cascades  map[int]int // Passes per swap -> number of swaps

	Elapsed time.Duration
}

// Summarize builds a report from per-game results.
func Summarize(results []GameResult) *Report {
	rep := &Report{
		Games:    len(results),
		Cascades: make(map[int]int),
	}
	if len(results) == 0 {
		return rep
	}

	scores := make([]float64, len(results))
	swaps := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		swaps[i] = float64(r.Swaps)
		rep.TotalSwaps += r.Swaps
		rep.ScoreMax = max(rep.ScoreMax, r.Score)
		rep.BestCombo = max(rep.BestCombo, r.BestCombo)
		if r.NoMoves {
			rep.NoMoveEnds++
		}
		for _, c := range r.Combos {
			rep.Cascades[c]++
		}
	}

	sort.Float64s(scores)
	rep.ScoreMean = stat.Mean(scores, nil)
	rep.SwapsMean = stat.Mean(swaps, nil)
	rep.ScoreP50 = stat.Quantile(0.5, stat.Empirical, scores, nil)
	rep.ScoreP95 = stat.Quantile(0.95, stat.Empirical, scores, nil)
	rep.ScoreCI = CI{Lo: rep.ScoreMean, Hi: rep.ScoreMean}

	n := len(scores)
	if n > 1 {
		rep.ScoreStd = stat.StdDev(scores, nil)
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		half := t.Quantile(0.975) * rep.ScoreStd / math.Sqrt(float64(n))
		rep.ScoreCI = CI{Lo: rep.ScoreMean - half, Hi: rep.ScoreMean + half}
	}
	return rep
}

// Write prints the report as a box table.
func (r *Report) Write(w io.Writer) error {
	_, err := io.WriteString(w, r.Table())
	return err
}

// Table formats the report as a two-column box table followed by the cascade histogram.
func (r *Report) Table() string {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Games":         p.Sprintf("%d", r.Games),
		"Seed":          fmt.Sprintf("%d", r.Seed),
		"Total Swaps":   p.Sprintf("%d", r.TotalSwaps),
		"Swaps / Game":  p.Sprintf("%.2f", r.SwapsMean),
		"Out Of Moves":  p.Sprintf("%d", r.NoMoveEnds),
		"Mean Score":    p.Sprintf("%.2f", r.ScoreMean),
		"Score 95% CI":  p.Sprintf("[%.2f, %.2f]", r.ScoreCI.Lo, r.ScoreCI.Hi),
		"Score STD":     p.Sprintf("%.3f", r.ScoreStd),
		"Score P50":     p.Sprintf("%.0f", r.ScoreP50),
		"Score P95":     p.Sprintf("%.0f", r.ScoreP95),
		"Best Score":    p.Sprintf("%d", r.ScoreMax),
		"Longest Combo": p.Sprintf("%d", r.BestCombo),
		"Elapsed":       r.Elapsed.Round(time.Millisecond).String(),
	}
	keys := []string{
		"Games", "Seed", "Total Swaps", "Swaps / Game", "Out Of Moves",
		"Mean Score", "Score 95% CI", "Score STD", "Score P50", "Score P95",
		"Best Score", "Longest Combo", "Elapsed",
	}
	out := fmtTable("Match-3 Simulation", keys, basic)

	if len(r.Cascades) == 0 {
		return out
	}
	depths := make([]int, 0, len(r.Cascades))
	for d := range r.Cascades {
		depths = append(depths, d)
	}
	slices.Sort(depths)

	hist := make(map[string]string, len(depths))
	hkeys := make([]string, 0, len(depths))
	for _, d := range depths {
		k := p.Sprintf("%d pass", d)
		if d != 1 {
			k += "es"
		}
		share := 100 * float64(r.Cascades[d]) / float64(max(r.TotalSwaps, 1))
		hist[k] = p.Sprintf("%d (%.2f %%)", r.Cascades[d], share)
		hkeys = append(hkeys, k)
	}
	return out + fmtTable("Cascade Depth", hkeys, hist)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(m))
	}
	maxKeyLen += 2
	maxValLen += 2

	// The title row must fit as well.
	totalInner := maxKeyLen + maxValLen + 1
	if w := runewidth.StringWidth(title) + 2; w > totalInner {
		maxValLen += w - totalInner
		totalInner = w
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	fmt.Fprintf(&sb, "|%s%s%s|\n", blank(left), title, blank(right))
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		fmt.Fprintf(&sb, "| %s%s | %s%s |\n",
			k, blank(maxKeyLen-2-runewidth.StringWidth(k)),
			v, blank(maxValLen-2-runewidth.StringWidth(v)))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
