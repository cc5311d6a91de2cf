package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

type mockRowStore struct {
	mock.Mock
}

func (m *mockRowStore) Upsert(ctx context.Context, lead *entity.Lead, now time.Time) (entity.ReconcileResult, error) {
	args := m.Called(ctx, lead, now)
	return args.Get(0).(entity.ReconcileResult), args.Error(1)
}

type mockDocumentStore struct {
	mock.Mock
}

func (m *mockDocumentStore) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	args := m.Called(ctx, collection, key, fields)
	return args.Error(0)
}

func (m *mockDocumentStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Send(ctx context.Context, template, recipient string, lead *entity.Lead) error {
	args := m.Called(ctx, template, recipient, lead)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishLeadCaptured(ctx context.Context, event queue.LeadCapturedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
