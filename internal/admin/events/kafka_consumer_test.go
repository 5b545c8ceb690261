package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type MockKafkaReader struct {
	mock.Mock
}

func (m *MockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockKafkaReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaReader) Close() error {
	args := m.Called()
	return args.Error(0)
}

func message(t *testing.T, ev Event) kafka.Message {
	t.Helper()
	value, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(ev.ID), Value: value}
}

func TestConsumer_Process(t *testing.T) {
	t.Run("handled events are committed", func(t *testing.T) {
		reader := new(MockKafkaReader)
		reader.On("CommitMessages", mock.Anything, mock.Anything).Return(nil)
		consumer := newConsumer(reader, zaptest.NewLogger(t))

		var got Event
		consumer.RegisterHandler(func(_ context.Context, ev Event) error {
			got = ev
			return nil
		})

		ev := NewEvent(Updated, EntityEstablishment, uuid.New())
		consumer.process(context.Background(), message(t, ev))

		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, Updated, got.Type)
		reader.AssertNumberOfCalls(t, "CommitMessages", 1)
	})

	t.Run("handler failure leaves message uncommitted", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		reader := new(MockKafkaReader)
		consumer := newConsumer(reader, zap.New(core))
		consumer.RegisterHandler(func(context.Context, Event) error { return errors.New("redis down") })

		consumer.process(context.Background(), message(t, NewEvent(Deleted, EntityEmployee, uuid.New())))

		assert.Equal(t, 1, recorded.FilterMessage("Failed to handle event").Len())
		reader.AssertNotCalled(t, "CommitMessages", mock.Anything, mock.Anything)
	})

	t.Run("unparseable messages are skipped", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		reader := new(MockKafkaReader)
		reader.On("CommitMessages", mock.Anything, mock.Anything).Return(nil)
		consumer := newConsumer(reader, zap.New(core))
		called := false
		consumer.RegisterHandler(func(context.Context, Event) error {
			called = true
			return nil
		})

		consumer.process(context.Background(), kafka.Message{Value: []byte("{not json")})

		assert.False(t, called)
		assert.Equal(t, 1, recorded.FilterMessage("Failed to parse event").Len())
		reader.AssertNumberOfCalls(t, "CommitMessages", 1)
	})
}

func TestConsumer_StartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ev := NewEvent(Created, EntityEmployeeRole, uuid.New())

	reader := new(MockKafkaReader)
	reader.On("FetchMessage", mock.Anything).Return(message(t, ev), nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, context.Canceled)
	reader.On("CommitMessages", mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	consumer := newConsumer(reader, zaptest.NewLogger(t))
	consumer.RegisterHandler(func(_ context.Context, got Event) error {
		defer wg.Done()
		assert.Equal(t, ev.ID, got.ID)
		cancel()
		return nil
	})

	consumer.Start(ctx)
	wg.Wait()
}

func TestConsumer_Close(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	reader := new(MockKafkaReader)
	reader.On("Close").Return(errors.New("already closed"))

	newConsumer(reader, zap.New(core)).Close()

	assert.Equal(t, 1, recorded.FilterMessage("Failed to close Kafka reader").Len())
}

func TestNewConsumerJoinsConfiguredGroup(t *testing.T) {
	consumer := NewConsumer([]string{"localhost:9092"}, "admin-cache-invalidator", "admin-entity-events", zaptest.NewLogger(t))
	defer consumer.Close()

	reader, ok := consumer.reader.(*kafka.Reader)
	require.True(t, ok)
	assert.Equal(t, "admin-cache-invalidator", reader.Config().GroupID)
	assert.Equal(t, "admin-entity-events", reader.Config().Topic)
}
