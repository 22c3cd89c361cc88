package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/sightdrill/internal/model"
	"github.com/verte-zerg/sightdrill/internal/pool"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Summary  Summary
	Sessions []profile.SessionSummary
	Weak     []WordRow
	Top      []string
	// HasSessions is false when the store keeps no answer log.
	HasSessions bool
}

// BuildReport loads a profile and prepares data for stats rendering.
func BuildReport(ctx context.Context, st profile.Store, src pool.Source, cfg model.StatsConfig) (Report, error) {
	rec, err := st.Load(ctx, cfg.Profile)
	if err != nil {
		return Report{}, err
	}

	words := pool.BuildPool(src, rec.EnabledLists)
	report := Report{
		Summary: Summarize(rec, words),
		Weak:    SelectWeakWords(rec.History, cfg.Weak),
		Top:     TopWordsByPractice(rec.History, cfg.Weak),
	}

	if log, ok := st.(profile.AnswerLog); ok {
		sessions, err := log.ListSessions(ctx, rec.Name)
		if err != nil {
			return Report{}, err
		}
		if cfg.Last > 0 && len(sessions) > cfg.Last {
			sessions = sessions[len(sessions)-cfg.Last:]
		}
		report.Sessions = sessions
		report.HasSessions = true
	}
	return report, nil
}

// RenderReport prints the whole report. width bounds the sparkline.
func RenderReport(w io.Writer, r Report, window, width int, useColor bool) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if r.HasSessions {
		if err := RenderSessions(w, r.Sessions, window, width-len("Accuracy ||")); err != nil {
			return err
		}
	}
	if err := RenderWordTable(w, "Weakest Words", r.Weak, useColor); err != nil {
		return err
	}
	if len(r.Top) > 0 {
		if _, err := fmt.Fprintf(w, "Most practiced: %s\n", strings.Join(r.Top, ", ")); err != nil {
			return err
		}
	}
	return nil
}
