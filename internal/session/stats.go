package session

import (
	"time"

	"bitsense/internal/round"
)

// Stats summarizes the completed rounds of a session.
type Stats struct {
	Total      int
	Correct    int
	TimedOut   int
	Skipped    int
	Streak     int
	BestStreak int

	BestBitsPerSecond float64
	SumBitsPerSecond  float64
	SolveTime         time.Duration
}

// Accuracy is the fraction of completed rounds answered correctly.
func (s Stats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// AverageBitsPerSecond averages the score over correct rounds.
func (s Stats) AverageBitsPerSecond() float64 {
	if s.Correct == 0 {
		return 0
	}
	return s.SumBitsPerSecond / float64(s.Correct)
}

// AverageSolveTime is the mean elapsed time of correct rounds.
func (s Stats) AverageSolveTime() time.Duration {
	if s.Correct == 0 {
		return 0
	}
	return s.SolveTime / time.Duration(s.Correct)
}

func (s *Stats) add(res round.Result) {
	s.Total++
	switch res.Status {
	case round.Succeeded:
		s.Correct++
		s.Streak++
		s.SumBitsPerSecond += res.BitsPerSecond
		s.SolveTime += res.Elapsed
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		if res.BitsPerSecond > s.BestBitsPerSecond {
			s.BestBitsPerSecond = res.BitsPerSecond
		}
		return
	case round.TimedOut:
		s.TimedOut++
	case round.Aborted:
		s.Skipped++
	}
	s.Streak = 0
}
