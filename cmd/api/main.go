package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/database"
	"github.com/xavierca1/lead-intake/internal/infra/firestore"
	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	"github.com/xavierca1/lead-intake/internal/infra/integration/resend"
	"github.com/xavierca1/lead-intake/internal/infra/mail"
	"github.com/xavierca1/lead-intake/internal/infra/observability"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/infra/sheets"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Environment, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		log.WithError(err).Warn("sentry disabled")
		flush = func() {}
	}
	defer flush()

	ctx := context.Background()

	// 1. Row store
	rows, rowStoreReady := newRowStore(ctx, cfg, log)

	// 2. Document store
	documents, documentsName, documentsDB, closeDocuments := newDocumentStore(ctx, cfg, log)
	defer closeDocuments()

	// 3. Mail
	dispatcher, mailName := newDispatcher(cfg, log)

	// 4. Broker
	var (
		events usecase.EventPublisher
		broker handlers.BrokerStatus
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, lead events disabled")
		} else {
			defer rabbitMQ.Close()
			events = queue.NewProducer(rabbitMQ.Ch)
			broker = rabbitMQ
		}
	}

	// 5. UseCases
	captureLeadUC := usecase.NewCaptureLeadUseCase(
		rows, documents, dispatcher, events,
		usecase.CaptureLeadConfig{
			InternalRecipient: cfg.NotifyTo,
			FollowupAssignee:  cfg.FollowupAssignee,
		},
		log,
	)
	joinWaitlistUC := usecase.NewJoinWaitlistUseCase(documents, log)

	// 6. Router
	router := newRouter(log, cfg.AllowedOrigins, cfg.RateLimit, routes{
		lead:     handlers.NewLeadHandler(captureLeadUC),
		waitlist: handlers.NewWaitlistHandler(joinWaitlistUC),
		health:   handlers.NewHealthHandler(rowStoreReady, documentsName, mailName, broker).WithDatabase(documentsDB),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("🔥 lead intake API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}

// newRowStore always returns a store: without credentials or SPREADSHEET_ID
// every submission fails at reconciliation with the configuration error.
func newRowStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (entity.RowStore, bool) {
	svc, err := sheets.NewService(ctx, sheets.Credentials{
		ServiceAccountJSON: cfg.GoogleCredentials,
		ClientID:           cfg.GoogleClientID,
		ClientSecret:       cfg.GoogleClientSecret,
		RefreshToken:       cfg.GoogleRefreshToken,
	})
	if err != nil {
		log.WithError(err).Error("google sheets not configured, leads will be rejected")
		return unavailableRowStore{err: err}, false
	}
	if cfg.SpreadsheetID == "" {
		log.Error("SPREADSHEET_ID is not set, leads will be rejected")
	}
	return sheets.NewLeadSheet(sheets.NewClient(svc), cfg.SpreadsheetID, cfg.SheetName), cfg.SpreadsheetID != ""
}

type unavailableRowStore struct{ err error }

func (u unavailableRowStore) Upsert(context.Context, *entity.Lead, time.Time) (entity.ReconcileResult, error) {
	return entity.ReconcileResult{}, u.err
}

// newDocumentStore also returns the Postgres pool for the health check; it
// is nil for every other store.
func newDocumentStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (entity.DocumentStore, string, handlers.Pinger, func()) {
	noop := func() {}

	switch cfg.DocumentStore {
	case config.DocumentStoreFirestore:
		store, err := firestore.NewStore(ctx, cfg.FirebaseServiceAccount, cfg.FirestoreProjectID)
		if err != nil {
			log.WithError(err).Warn("firestore unavailable, mirroring disabled")
			return nil, "", nil, noop
		}
		return store, config.DocumentStoreFirestore, nil, func() { _ = store.Close() }

	case config.DocumentStorePostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("postgres unavailable, mirroring disabled")
			return nil, "", nil, noop
		}
		repo := database.NewDocumentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.WithError(err).Warn("postgres schema setup failed, mirroring disabled")
			_ = db.Close()
			return nil, "", nil, noop
		}
		return repo, config.DocumentStorePostgres, db, func() { _ = db.Close() }
	}

	log.Warn("DOCUMENT_STORE not set, mirroring and waitlist disabled")
	return nil, "", nil, noop
}

func newDispatcher(cfg *config.Config, log logrus.FieldLogger) (usecase.NotificationDispatcher, string) {
	settings := mail.Settings{
		From:       cfg.MailFrom,
		Brand:      cfg.BrandName,
		SenderName: cfg.SenderName,
		BookingURL: cfg.BookingURL,
	}

	switch {
	case cfg.ResendAPIKey != "":
		return mail.NewDispatcher(mail.NewResendTransport(resend.NewClient(cfg.ResendAPIKey)), settings), "resend"
	case cfg.MailHost != "":
		return mail.NewDispatcher(mail.NewSMTPTransport(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass), settings), "smtp"
	}

	log.Warn("no mail transport configured, notifications disabled")
	return nil, ""
}
