// Package stats contains progress calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/pool"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

const sparkChars = " .:-=+*#%@"

// Summary is the headline progress of one profile.
type Summary struct {
	Profile  string
	Lists    []string
	PoolSize int
	Mastered int
	// MasteredOverall counts mastered words across every list ever practiced.
	MasteredOverall int
	Seen            int
	Correct         int
	Incorrect       int
	Score           int
	Streak          int
}

// Summarize computes the summary of rec against the words of its enabled lists.
func Summarize(rec profile.Record, words pool.Pool) Summary {
	mastered, _ := mastery.Classify(words, rec.History)
	s := Summary{
		Profile:         rec.Name,
		Lists:           append([]string(nil), rec.EnabledLists...),
		PoolSize:        words.Len(),
		Mastered:        len(mastered),
		MasteredOverall: rec.History.MasteredCount(),
		Seen:            rec.SeenCount(),
		Score:           rec.Session.Score,
		Streak:          rec.Session.Streak,
	}
	for _, wr := range rec.History {
		s.Correct += wr.Correct
		s.Incorrect += wr.Incorrect
	}
	return s
}

// Accuracy returns the share of correct answers, or 0 with no answers.
func (s Summary) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}

// SessionAccuracy returns the accuracy of each session in order.
func SessionAccuracy(sessions []profile.SessionSummary) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		if total := s.Correct + s.Incorrect; total > 0 {
			out[i] = float64(s.Correct) / float64(total)
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for values in [0, 1].
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(v * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline numbers for a profile.
func RenderSummary(w io.Writer, s Summary) error {
	lines := []string{
		fmt.Sprintf("Profile: %s", s.Profile),
		fmt.Sprintf("Lists: %s", strings.Join(s.Lists, ", ")),
		fmt.Sprintf("Mastered: %d / %d (%d overall)", s.Mastered, s.PoolSize, s.MasteredOverall),
		fmt.Sprintf("Words seen: %d", s.Seen),
		fmt.Sprintf("Answers: %d correct, %d incorrect (%.2f%%)", s.Correct, s.Incorrect, s.Accuracy()*100),
		fmt.Sprintf("Score: %d  Streak: %d", s.Score, s.Streak),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessions prints a sparkline of session accuracy, clipped to width.
func RenderSessions(w io.Writer, sessions []profile.SessionSummary, window, width int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded.")
		return err
	}
	values := MovingAverage(SessionAccuracy(sessions), window)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	last := sessions[len(sessions)-1]
	rows := []string{
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Accuracy |%s|", Sparkline(values)),
		fmt.Sprintf("Last session: %s, %d correct, %d incorrect",
			last.StartedAt.Local().Format("2006-01-02 15:04"), last.Correct, last.Incorrect),
		"",
	}
	for _, line := range rows {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWordTable prints per-word rows.
func RenderWordTable(w io.Writer, title string, rows []WordRow, useColor bool) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No words practiced yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	headers := []string{"Word", "Status", "Accuracy", "Correct", "Incorrect", "Streak"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Word,
			r.Record.Status.String(),
			fmt.Sprintf("%.2f%%", r.Record.Accuracy()*100),
			fmt.Sprintf("%d", r.Record.Correct),
			fmt.Sprintf("%d", r.Record.Incorrect),
			fmt.Sprintf("%d", r.Record.Streak),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for i, line := range lines {
		if useColor && i > 0 && rows[i-1].Record.Status == mastery.Mastered {
			line = colorGreen + line + colorReset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
