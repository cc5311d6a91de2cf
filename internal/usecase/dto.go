package usecase

import "github.com/xavierca1/lead-intake/internal/entity"

type CaptureLeadInput struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message"`
	Source  string `json:"source"`
	// Older forms post the quiz outcome as "result".
	QuizResult string `json:"quizResult"`
	Result     string `json:"result"`
	PainPoint  string `json:"painPoint"`
}

func (in CaptureLeadInput) quizResult() string {
	if in.QuizResult != "" {
		return in.QuizResult
	}
	return in.Result
}

type CaptureLeadOutput struct {
	Result      entity.ReconcileResult `json:"result"`
	Score       int                    `json:"score"`
	Temperature entity.Temperature     `json:"temperature"`
	SideEffects []SideEffectResult     `json:"-"`
}

// Degraded reports whether any best-effort step failed.
func (o *CaptureLeadOutput) Degraded() bool {
	for _, r := range o.SideEffects {
		if r.Err != nil {
			return true
		}
	}
	return false
}

type JoinWaitlistInput struct {
	Email string `json:"email" validate:"required"`
}

type JoinWaitlistOutput struct {
	ID string `json:"id"`
}
