package services

import (
	"fmt"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
)

// MilestonePolicy decides whether a streak value earns a reward. Two
// policies exist historically; ExactMatchPolicy is the canonical one and
// ModuloPolicy is kept as a named alternative for deployments that still
// expect a badge at every tenth day.
type MilestonePolicy interface {
	Classify(streak int) *domain.Reward
}

// ExactMatchPolicy fires only at the fixed thresholds below, each with a
// distinct badge. A streak past a threshold earns nothing: day 8 is not a
// second day-7 reward.
type ExactMatchPolicy struct{}

var exactMilestones = map[int]string{
	7:   "Week Warrior",
	30:  "Monthly Master",
	100: "Century Club",
	365: "Year-Long Legend",
}

func (ExactMatchPolicy) Classify(streak int) *domain.Reward {
	badge, ok := exactMilestones[streak]
	if !ok {
		return nil
	}
	return &domain.Reward{Streak: streak, Badge: badge}
}

// ModuloPolicy fires at every positive multiple of 10.
type ModuloPolicy struct{}

func (ModuloPolicy) Classify(streak int) *domain.Reward {
	if streak <= 0 || streak%10 != 0 {
		return nil
	}
	return &domain.Reward{
		Streak: streak,
		Badge:  fmt.Sprintf("%d-Day Milestone", streak),
	}
}

// MilestonePolicyFromName resolves a configured policy name, defaulting to
// exact-match for unknown values.
func MilestonePolicyFromName(name string) MilestonePolicy {
	if name == "modulo" {
		return ModuloPolicy{}
	}
	return ExactMatchPolicy{}
}

// Reinforcement message templates, banded by streak. Loaded once and
// read-only thereafter.
var reinforcementBands = []struct {
	minStreak int
	template  string
}{
	{30, "Incredible! %d days of %q and counting. You own this habit."},
	{14, "Two weeks strong: %d days of %q. Keep the chain alive!"},
	{7, "One week in! %d straight days of %q. Great momentum."},
	{0, "Day %d of %q. Every completion counts."},
}

// ReinforcementMessage maps a streak to an encouragement string. Bands are
// exclusive-highest-first: a streak of 30 gets the 30-day message, not the
// 14-day one.
func ReinforcementMessage(habitName string, streak int) string {
	for _, band := range reinforcementBands {
		if streak >= band.minStreak {
			return fmt.Sprintf(band.template, streak, habitName)
		}
	}
	return fmt.Sprintf(reinforcementBands[len(reinforcementBands)-1].template, streak, habitName)
}
