package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/observability"
)

// ErrWaitlistUnavailable is returned when no document store is configured.
var ErrWaitlistUnavailable = errors.New("waitlist unavailable")

type JoinWaitlistUseCase struct {
	Documents DocumentStore
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

func NewJoinWaitlistUseCase(documents DocumentStore, logger logrus.FieldLogger) *JoinWaitlistUseCase {
	return &JoinWaitlistUseCase{
		Documents: documents,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute appends the normalized email to the waitlist collection. Unlike
// leads, waitlist entries are not deduplicated.
func (uc *JoinWaitlistUseCase) Execute(ctx context.Context, input JoinWaitlistInput) (*JoinWaitlistOutput, error) {
	if err := ValidateJoinWaitlistInput(input); err != nil {
		return nil, err
	}
	if uc.Documents == nil {
		return nil, ErrWaitlistUnavailable
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	id, err := uc.Documents.Add(ctx, entity.CollectionWaitlist, map[string]any{
		"email":     email,
		"createdAt": uc.Now(),
	})
	if err != nil {
		uc.Logger.WithField("email", email).WithError(err).Error("waitlist write failed")
		return nil, err
	}

	observability.RecordWaitlistSignup()
	uc.Logger.WithField("email", email).Info("waitlist signup")
	return &JoinWaitlistOutput{ID: id}, nil
}
