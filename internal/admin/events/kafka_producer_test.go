package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements KafkaWriter for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testEvent() Event {
	return NewEvent(Created, EntityEstablishmentPhone, uuid.New())
}

func TestNewEvent(t *testing.T) {
	id := uuid.New()
	ev := NewEvent(Deleted, EntityEmployee, id)

	assert.Equal(t, id.String(), ev.ID)
	assert.Equal(t, "employee.deleted", ev.Name())
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Second)

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entity":"employee"`)
	assert.Contains(t, string(data), `"type":"deleted"`)
}

func TestProducer_Produce(t *testing.T) {
	t.Run("successful produce", func(t *testing.T) {
		producer := &Producer{events: make(chan Event, 1), logger: zaptest.NewLogger(t)}

		producer.Produce(testEvent())

		assert.Equal(t, 1, len(producer.events))
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := &Producer{events: make(chan Event, 1), logger: zap.New(core)}

		producer.Produce(testEvent())
		producer.Produce(testEvent())

		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := &Producer{
		writer: mockWriter,
		logger: zaptest.NewLogger(t),
	}
	event := testEvent()

	t.Run("successful send", func(t *testing.T) {
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)

		producer.sendEvent(context.Background(), event)

		value, err := json.Marshal(event)
		require.NoError(t, err)
		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{
				Key:     []byte(event.ID),
				Value:   value,
				Headers: []kafka.Header{{Key: "event", Value: []byte("establishment_phone.created")}},
			},
		})
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)

		oldMarshal := jsonMarshal
		jsonMarshal = func(_ interface{}) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("id", event.ID)).Len())
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)
		mockWriter.ExpectedCalls = nil
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
	})
}

func TestProducer_CloseFlushesQueue(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	mockWriter.On("Close").Return(nil)

	producer := newProducer(mockWriter, zaptest.NewLogger(t))
	producer.Produce(testEvent())
	producer.Produce(testEvent())
	producer.Close()

	select {
	case <-producer.closeChan:
	default:
		t.Error("closeChan not closed")
	}
	mockWriter.AssertNumberOfCalls(t, "WriteMessages", 2)
	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_EventLoop(t *testing.T) {
	sent := make(chan struct{}, 1)
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).
		Run(func(mock.Arguments) { sent <- struct{}{} })

	producer := &Producer{
		writer:    mockWriter,
		events:    make(chan Event, 1),
		logger:    zaptest.NewLogger(t),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go producer.eventLoop()
	defer close(producer.closeChan)

	producer.events <- testEvent()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("event was not written")
	}
}
