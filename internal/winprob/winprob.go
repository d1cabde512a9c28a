// Package winprob estimates a chasing side's chance of winning from the match
// state. It is a fixed heuristic; nothing is learned.
package winprob

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinProbability = 0.05
	MaxProbability = 0.95

	maxOvers   = 20
	maxWickets = 10
)

var ErrMalformedInput = errors.New("malformed win probability input")

// Input is the match state of the chasing side. City and RunsLast5 are
// accepted for context but do not affect the estimate.
type Input struct {
	BattingTeam string  `json:"batting_team"`
	BowlingTeam string  `json:"bowling_team"`
	City        string  `json:"city"`
	Target      int     `json:"target"`
	Score       int     `json:"score"`
	Wickets     int     `json:"wickets"`
	Overs       float64 `json:"overs"`
	RunsLast5   int     `json:"runs_last_5"`
}

// DefaultInput holds the values assumed for fields a caller leaves out.
func DefaultInput() Input {
	return Input{Target: 180, Score: 100, Wickets: 3, Overs: 15, RunsLast5: 45}
}

// Result is the estimate plus the derived quantities behind it.
type Result struct {
	WinProbability  float64 `json:"probability"`
	BattingTeam     string  `json:"batting_team"`
	BowlingTeam     string  `json:"bowling_team"`
	RequiredRunRate float64 `json:"required_run_rate"`
	CurrentRunRate  float64 `json:"current_run_rate"`
	RunsLeft        int     `json:"runs_left"`
	BallsLeft       int     `json:"balls_left"`
	WicketsLeft     int     `json:"wickets_left"`
}

func (in Input) validate() error {
	switch {
	case in.Wickets < 0 || in.Wickets > maxWickets:
		return fmt.Errorf("%w: wickets %d not in [0,%d]", ErrMalformedInput, in.Wickets, maxWickets)
	case !finite(in.Overs):
		return fmt.Errorf("%w: overs is not a finite number", ErrMalformedInput)
	case in.Overs < 0 || in.Overs > maxOvers:
		return fmt.Errorf("%w: overs %v not in [0,%d]", ErrMalformedInput, in.Overs, maxOvers)
	case in.Target < 0 || in.Score < 0 || in.RunsLast5 < 0:
		return fmt.Errorf("%w: runs must be non-negative", ErrMalformedInput)
	}
	return nil
}

// Estimate computes the win probability, clamped to [0.05, 0.95].
func Estimate(in Input) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	runsLeft := in.Target - in.Score
	ballsLeft := (maxOvers - in.Overs) * 6
	wicketsLeft := maxWickets - in.Wickets

	var crr, rrr float64
	if in.Overs != 0 {
		crr = float64(in.Score) / in.Overs
	}
	if ballsLeft > 0 {
		rrr = float64(runsLeft) / (ballsLeft / 6)
	}
	if !finite(crr) || !finite(rrr) {
		return Result{}, fmt.Errorf("%w: run rate overflows at %v overs", ErrMalformedInput, in.Overs)
	}

	p := 0.5
	p += float64(wicketsLeft-5) * 0.05
	if rrr > 0 {
		p += (crr - rrr) * 0.05
	}
	p += (ballsLeft - 60) * 0.002
	p = math.Max(MinProbability, math.Min(MaxProbability, p))

	return Result{
		WinProbability:  p,
		BattingTeam:     in.BattingTeam,
		BowlingTeam:     in.BowlingTeam,
		RequiredRunRate: rrr,
		CurrentRunRate:  crr,
		RunsLeft:        runsLeft,
		BallsLeft:       int(ballsLeft),
		WicketsLeft:     wicketsLeft,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
