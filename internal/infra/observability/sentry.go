package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry configures the global hub. With an empty DSN nothing is sent
// and CaptureFailure only logs.
func InitSentry(dsn, environment string) (flush func(), err error) {
	if dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureFailure records an error that was handled and swallowed: logged
// with its context, sent to Sentry, counted.
func CaptureFailure(log logrus.FieldLogger, effect string, err error, fields logrus.Fields) {
	log.WithFields(fields).
		WithField("effect", effect).
		WithError(err).
		Error("best-effort step failed")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("effect", effect)
		for k, v := range fields {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})

	RecordSideEffectFailure(effect)
}
