package main

import (
	"testing"

	"snake-agents/agent"
	"snake-agents/game"
)

func TestRunGameEndsWithinCap(t *testing.T) {
	g := game.NewGame(game.DefaultWidth, game.DefaultHeight)

	result := runGame(g, agent.NewReflex(), 200)
	if g.Steps() > 200 {
		t.Errorf("steps = %d, exceeds the cap", g.Steps())
	}
	if result.Status == game.Continuing && g.Steps() < 200 {
		t.Error("loop stopped early without a collision")
	}
}

func TestRunGameGoalEngineScores(t *testing.T) {
	g := game.NewGame(game.DefaultWidth, game.DefaultHeight)

	runGame(g, agent.NewGoal(), 500)
	// The planner reaches at least the first apple on an open board.
	if g.Score() < 1 {
		t.Errorf("score = %d, want at least 1", g.Score())
	}
}

func TestEngineResultAggregates(t *testing.T) {
	r := &engineResult{
		Name:   "fixture",
		Scores: []int{2, 8, 5},
		Steps:  []int{100, 400, 250},
	}

	if got := r.Best(); got != 8 {
		t.Errorf("best = %d, want 8", got)
	}
	if got := r.MeanScore(); got != 5 {
		t.Errorf("mean = %v, want 5", got)
	}
	if got := r.MedianScore(); got != 5 {
		t.Errorf("median = %v, want 5", got)
	}
	if got := r.MeanSteps(); got != 250 {
		t.Errorf("mean steps = %v, want 250", got)
	}
}

func TestEngineResultEmpty(t *testing.T) {
	r := &engineResult{Name: "empty"}

	if r.Best() != 0 || r.MeanScore() != 0 || r.MedianScore() != 0 || r.MeanSteps() != 0 {
		t.Error("empty result should aggregate to zeroes")
	}
}
