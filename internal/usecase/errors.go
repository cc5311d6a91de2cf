package usecase

// Stage is a step of a lead submission.
type Stage string

const (
	StageValidating  Stage = "validating"
	StageScoring     Stage = "scoring"
	StageReconciling Stage = "reconciling"
	StageMirroring   Stage = "mirroring"
	StageNotifying   Stage = "notifying"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// StageError aborts a submission. Its message is the cause's message, unchanged.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }
