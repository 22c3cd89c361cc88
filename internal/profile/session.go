package profile

// SessionAggregate is the score and cross-word streak shown on the scoreboard.
// It is independent of the per-word streak used for mastery.
type SessionAggregate struct {
	Score  int
	Streak int
}

// Apply returns the aggregate after one answer.
func (a SessionAggregate) Apply(correct bool) SessionAggregate {
	if correct {
		return SessionAggregate{Score: a.Score + PointsPerCorrect, Streak: a.Streak + 1}
	}
	return SessionAggregate{Score: a.Score, Streak: 0}
}
