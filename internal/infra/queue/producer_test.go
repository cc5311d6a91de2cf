package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestPublishLeadCaptured(t *testing.T) {
	ch := new(mockPublisher)
	ch.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false, mock.Anything).Return(nil)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := NewProducer(ch).PublishLeadCaptured(context.Background(), LeadCapturedEvent{
		Email:       "a@x.com",
		Score:       45,
		Temperature: "warm",
		Action:      "appended",
		Position:    3,
		CapturedAt:  at,
	})

	require.NoError(t, err)
	ch.AssertExpectations(t)

	msg := ch.Calls[0].Arguments.Get(5).(amqp.Publishing)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, at, msg.Timestamp)

	var got LeadCapturedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, 45, got.Score)
	assert.Equal(t, 3, got.Position)
}

func TestPublishLeadCaptured_ChannelError(t *testing.T) {
	ch := new(mockPublisher)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel/connection is not open"))

	err := NewProducer(ch).PublishLeadCaptured(context.Background(), LeadCapturedEvent{Email: "a@x.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish lead event")
}
