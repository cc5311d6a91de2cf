package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/observability"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

// Names of the best-effort steps, as they appear in logs and metrics.
const (
	EffectAuditDocument = "mirror_audit_document"
	EffectKeyedDocument = "mirror_keyed_document"
	EffectInternalAlert = "notify_internal"
	EffectAcknowledge   = "notify_acknowledgment"
	EffectFollowup      = "followup_record"
	EffectPublishEvent  = "publish_event"
)

const defaultFollowupAssignee = "va"

type CaptureLeadConfig struct {
	// InternalRecipient receives the new-lead alert. Empty disables it.
	InternalRecipient string
	FollowupAssignee  string
}

// CaptureLeadUseCase takes one submission through validation, scoring and
// row-store reconciliation, then fans it out to the document store,
// notifications and the event broker. Only the row store can fail the
// submission; everything after it is logged and swallowed.
type CaptureLeadUseCase struct {
	Rows       RowStore
	Documents  DocumentStore
	Dispatcher NotificationDispatcher
	Events     EventPublisher
	Config     CaptureLeadConfig
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

func NewCaptureLeadUseCase(
	rows RowStore,
	documents DocumentStore,
	dispatcher NotificationDispatcher,
	events EventPublisher,
	cfg CaptureLeadConfig,
	logger logrus.FieldLogger,
) *CaptureLeadUseCase {
	if cfg.FollowupAssignee == "" {
		cfg.FollowupAssignee = defaultFollowupAssignee
	}
	return &CaptureLeadUseCase{
		Rows:       rows,
		Documents:  documents,
		Dispatcher: dispatcher,
		Events:     events,
		Config:     cfg,
		Logger:     logger,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute runs to completion even if ctx is canceled: the caller going away
// must not leave the row written and the side effects half done.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	ctx = context.WithoutCancel(ctx)
	log := uc.Logger.WithField("email", input.Email)

	log.WithField("stage", StageValidating).Debug("lead received")
	if err := ValidateCaptureLeadInput(input); err != nil {
		return nil, uc.fail(log, StageValidating, err)
	}

	// Stored timestamps have millisecond precision.
	now := uc.Now().Truncate(time.Millisecond)
	lead := entity.NewLead(input.Email)
	lead.Name = input.Name
	lead.Company = input.Company
	lead.Message = input.Message
	lead.QuizResult = input.quizResult()
	lead.PainPoint = input.PainPoint
	if input.Source != "" {
		lead.Source = input.Source
	}

	log.WithField("stage", StageScoring).Debug("scoring lead")
	lead.Score = ScoreLead(SignalInput{
		Message:    lead.Message,
		PainPoint:  lead.PainPoint,
		QuizResult: lead.QuizResult,
	})
	lead.Temperature = TemperatureFor(lead.Score)

	log.WithField("stage", StageReconciling).Debug("reconciling lead into row store")
	result, err := uc.Rows.Upsert(ctx, lead, now)
	if err != nil {
		return nil, uc.fail(log, StageReconciling, err)
	}
	lead.CreatedAt = result.CreatedAt
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now
	observability.RecordReconcile(string(result.Action), lead.Score)

	log = log.WithFields(logrus.Fields{
		"action":      result.Action,
		"position":    result.Position,
		"score":       lead.Score,
		"temperature": lead.Temperature,
	})
	log.Info("✅ lead reconciled")

	effects := uc.sideEffects(lead, result)
	output := &CaptureLeadOutput{
		Result:      result,
		Score:       lead.Score,
		Temperature: lead.Temperature,
		SideEffects: effects.Run(ctx),
	}

	for _, r := range output.SideEffects {
		switch {
		case r.Skipped:
			log.WithField("effect", r.Name).Debug("step not configured, skipped")
		case r.Err != nil:
			observability.CaptureFailure(log, r.Name, r.Err, logrus.Fields{"stage": r.Stage})
		}
	}

	log.WithField("stage", StageCompleted).Info("lead captured")
	return output, nil
}

func (uc *CaptureLeadUseCase) fail(log logrus.FieldLogger, stage Stage, err error) error {
	log.WithFields(logrus.Fields{
		"stage":     StageFailed,
		"failed_at": stage,
	}).WithError(err).Warn("lead submission failed")
	return &StageError{Stage: stage, Err: err}
}

func (uc *CaptureLeadUseCase) sideEffects(lead *entity.Lead, result entity.ReconcileResult) *SideEffects {
	effects := NewSideEffects()

	if uc.Documents != nil {
		effects.Add(StageMirroring, EffectAuditDocument, func(ctx context.Context) error {
			_, err := uc.Documents.Add(ctx, entity.CollectionLeads, auditDocument(lead))
			return err
		})
		effects.Add(StageMirroring, EffectKeyedDocument, func(ctx context.Context) error {
			return uc.Documents.Set(ctx, entity.CollectionLeads, lead.Email, keyedDocument(lead))
		})
	} else {
		effects.Skip(StageMirroring, EffectAuditDocument)
		effects.Skip(StageMirroring, EffectKeyedDocument)
	}

	if uc.Dispatcher != nil && uc.Config.InternalRecipient != "" {
		effects.Add(StageNotifying, EffectInternalAlert, func(ctx context.Context) error {
			return uc.Dispatcher.Send(ctx, entity.TemplateInternalNotification, uc.Config.InternalRecipient, lead)
		})
	} else {
		effects.Skip(StageNotifying, EffectInternalAlert)
	}

	if uc.Dispatcher != nil {
		effects.Add(StageNotifying, EffectAcknowledge, func(ctx context.Context) error {
			return uc.Dispatcher.Send(ctx, entity.TemplateLeadAcknowledgment, lead.Email, lead)
		})
	} else {
		effects.Skip(StageNotifying, EffectAcknowledge)
	}

	if uc.Documents != nil {
		effects.Add(StageNotifying, EffectFollowup, func(ctx context.Context) error {
			return uc.Documents.Set(ctx, entity.CollectionFollowups, lead.Email, followupDocument(lead, uc.Config.FollowupAssignee))
		})
	} else {
		effects.Skip(StageNotifying, EffectFollowup)
	}

	if uc.Events != nil {
		effects.Add(StageNotifying, EffectPublishEvent, func(ctx context.Context) error {
			return uc.Events.PublishLeadCaptured(ctx, queue.LeadCapturedEvent{
				Email:       lead.Email,
				Name:        lead.Name,
				Company:     lead.Company,
				Source:      lead.Source,
				Score:       lead.Score,
				Temperature: string(lead.Temperature),
				Action:      string(result.Action),
				Position:    result.Position,
				CapturedAt:  lead.UpdatedAt,
			})
		})
	} else {
		effects.Skip(StageNotifying, EffectPublishEvent)
	}

	return effects
}

// auditDocument is the append-only record of one submission.
func auditDocument(lead *entity.Lead) map[string]any {
	return map[string]any{
		"name":          nullable(lead.Name),
		"company":       nullable(lead.Company),
		"email":         lead.Email,
		"message":       nullable(lead.Message),
		"result":        nullable(lead.QuizResult),
		"painPoint":     nullable(lead.PainPoint),
		"source":        lead.Source,
		"status":        "new",
		"followUpStage": 0,
		"vaAssigned":    false,
		"createdAt":     lead.UpdatedAt,
	}
}

// keyedDocument replaces the per-email document. createdAt comes from the
// row store so it stays the first-submission time here too.
func keyedDocument(lead *entity.Lead) map[string]any {
	return map[string]any{
		"name":          nullable(lead.Name),
		"company":       nullable(lead.Company),
		"email":         lead.Email,
		"message":       nullable(lead.Message),
		"result":        nullable(lead.QuizResult),
		"painPoint":     nullable(lead.PainPoint),
		"source":        lead.Source,
		"score":         lead.Score,
		"temperature":   string(lead.Temperature),
		"status":        "new",
		"followUpStage": 0,
		"replied":       false,
		"createdAt":     lead.CreatedAt,
		"updatedAt":     lead.UpdatedAt,
	}
}

func followupDocument(lead *entity.Lead, assignee string) map[string]any {
	return map[string]any{
		"email":       lead.Email,
		"name":        nullable(lead.Name),
		"assignedTo":  assignee,
		"stage":       0,
		"status":      "pending",
		"temperature": string(lead.Temperature),
		"createdAt":   lead.CreatedAt,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
