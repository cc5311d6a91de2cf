package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/lead-intake/internal/entity"
)

func TestScoreLead(t *testing.T) {
	tests := []struct {
		name  string
		input SignalInput
		score int
		temp  entity.Temperature
	}{
		{
			name:  "no signals",
			input: SignalInput{Message: "hello"},
			score: 0,
			temp:  entity.TemperatureCold,
		},
		{
			name:  "message of exactly fifty characters",
			input: SignalInput{Message: strings.Repeat("a", 50)},
			score: 0,
			temp:  entity.TemperatureCold,
		},
		{
			name:  "long message",
			input: SignalInput{Message: strings.Repeat("a", 51)},
			score: 20,
			temp:  entity.TemperatureCold,
		},
		{
			name:  "chaos only",
			input: SignalInput{PainPoint: "Total CHAOS"},
			score: 30,
			temp:  entity.TemperatureWarm,
		},
		{
			name:  "manual quiz result",
			input: SignalInput{QuizResult: "Mostly Manual"},
			score: 25,
			temp:  entity.TemperatureCold,
		},
		{
			name:  "both pain point signals",
			input: SignalInput{PainPoint: "chaos and compliance"},
			score: 55,
			temp:  entity.TemperatureWarm,
		},
		{
			name:  "urgent short message",
			input: SignalInput{Message: "URGENT"},
			score: 40,
			temp:  entity.TemperatureWarm,
		},
		{
			name: "every signal",
			input: SignalInput{
				PainPoint:  "chaos compliance",
				QuizResult: "manual",
				Message:    "urgent request, please respond",
			},
			score: 120,
			temp:  entity.TemperatureHot,
		},
		{
			name: "every signal with long message",
			input: SignalInput{
				PainPoint:  "chaos compliance",
				QuizResult: "manual",
				Message:    "urgent: " + strings.Repeat("x", 60),
			},
			score: 140,
			temp:  entity.TemperatureHot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreLead(tt.input)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.temp, TemperatureFor(score))
		})
	}
}

func TestScoreLead_CountsRunesNotBytes(t *testing.T) {
	// 50 two-byte runes: over 50 bytes, not over 50 characters.
	assert.Equal(t, 0, ScoreLead(SignalInput{Message: strings.Repeat("é", 50)}))
}

func TestTemperatureFor_Boundaries(t *testing.T) {
	assert.Equal(t, entity.TemperatureCold, TemperatureFor(29))
	assert.Equal(t, entity.TemperatureWarm, TemperatureFor(30))
	assert.Equal(t, entity.TemperatureWarm, TemperatureFor(59))
	assert.Equal(t, entity.TemperatureHot, TemperatureFor(60))
}
