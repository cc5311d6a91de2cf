package usecase

import "context"

// SideEffect is a best-effort step that runs after the row store accepted
// the lead.
type SideEffect struct {
	Name  string
	Stage Stage
	Fn    func(context.Context) error
}

type SideEffectResult struct {
	Name    string
	Stage   Stage
	Skipped bool
	Err     error
}

// SideEffects runs every registered step in order. A failing step never stops
// the ones after it.
type SideEffects struct {
	effects []SideEffect
	skipped []SideEffectResult
}

func NewSideEffects() *SideEffects {
	return &SideEffects{}
}

func (s *SideEffects) Add(stage Stage, name string, fn func(context.Context) error) {
	s.effects = append(s.effects, SideEffect{Name: name, Stage: stage, Fn: fn})
}

// Skip records a step that is not configured for this deployment.
func (s *SideEffects) Skip(stage Stage, name string) {
	s.skipped = append(s.skipped, SideEffectResult{Name: name, Stage: stage, Skipped: true})
}

func (s *SideEffects) Run(ctx context.Context) []SideEffectResult {
	results := make([]SideEffectResult, 0, len(s.effects)+len(s.skipped))
	for _, e := range s.effects {
		results = append(results, SideEffectResult{
			Name:  e.Name,
			Stage: e.Stage,
			Err:   e.Fn(ctx),
		})
	}
	return append(results, s.skipped...)
}
