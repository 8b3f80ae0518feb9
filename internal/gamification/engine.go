// Package gamification derives a user's XP, level, badges, and daily streak
// from completion events. Apply is a pure function: it never touches storage,
// so callers decide when and how the result is persisted.
package gamification

import (
	"slices"
	"time"
)

const (
	// XPPerCompletion is the fixed award for every completion event.
	XPPerCompletion = 10

	// XPPerLevel is how much XP each level spans: level = xp/XPPerLevel + 1.
	XPPerLevel = 100

	dateLayout = "2006-01-02"
)

// State is the slice of a user record the engine reads and rewrites.
type State struct {
	XP     int
	Level  int
	Badges []string
	Streak int

	// LastCompletionDate is the calendar day (dateLayout, server-local) of
	// the most recent completion that advanced the streak; empty for a user
	// who has never completed a todo.
	LastCompletionDate string
}

// BadgeRule grants its badge once the predicate first holds. Rules are
// evaluated uniformly after XP and level are updated, and each grant is
// idempotent: a badge appears in State.Badges at most once.
type BadgeRule struct {
	ID     string
	Earned func(State) bool
}

var BadgeRules = []BadgeRule{
	{ID: "Rising Star", Earned: func(s State) bool { return s.XP >= 100 }},
	{ID: "Level Up Legend", Earned: func(s State) bool { return s.Level >= 5 }},
}

// Apply computes the successor state for a single completion event that
// occurred at occurredOn. XP, level, and badges advance on every call; the
// streak advances at most once per calendar day no matter how many todos are
// completed that day. Un-completing a todo must not call Apply — there is no
// reversal.
func Apply(s State, occurredOn time.Time) State {
	s.XP += XPPerCompletion
	s.Level = s.XP/XPPerLevel + 1

	for _, rule := range BadgeRules {
		if rule.Earned(s) && !slices.Contains(s.Badges, rule.ID) {
			s.Badges = append(s.Badges, rule.ID)
		}
	}

	today := occurredOn.Format(dateLayout)
	if s.LastCompletionDate != today {
		yesterday := occurredOn.AddDate(0, 0, -1).Format(dateLayout)
		if s.LastCompletionDate == yesterday {
			s.Streak++ // consecutive day, streak continues
		} else {
			s.Streak = 1 // first completion ever, or a gap — both reset to 1
		}
		s.LastCompletionDate = today
	}

	return s
}
