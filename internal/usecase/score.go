package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// SignalInput is the subset of a lead the score is computed from.
type SignalInput struct {
	Message    string
	PainPoint  string
	QuizResult string
}

type signal struct {
	weight int
	match  func(SignalInput) bool
}

const longMessageThreshold = 50

var signals = []signal{
	{30, func(in SignalInput) bool { return containsFold(in.PainPoint, "chaos") }},
	{25, func(in SignalInput) bool { return containsFold(in.PainPoint, "compliance") }},
	{25, func(in SignalInput) bool { return containsFold(in.QuizResult, "manual") }},
	{20, func(in SignalInput) bool { return utf8.RuneCountInString(in.Message) > longMessageThreshold }},
	{40, func(in SignalInput) bool { return containsFold(in.Message, "urgent") }},
}

// ScoreLead sums the weight of every matched signal. Signals are independent,
// so one field can contribute several weights.
func ScoreLead(in SignalInput) int {
	score := 0
	for _, s := range signals {
		if s.match(in) {
			score += s.weight
		}
	}
	return score
}

func TemperatureFor(score int) entity.Temperature {
	switch {
	case score >= 60:
		return entity.TemperatureHot
	case score >= 30:
		return entity.TemperatureWarm
	default:
		return entity.TemperatureCold
	}
}

func containsFold(s, substr string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), substr)
}
