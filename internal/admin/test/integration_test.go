package test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/cache"
	"github.com/testnest/admin/internal/admin/controller"
	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

const (
	kafkaBroker = "localhost:9092"
	redisAddr   = "localhost:6379"
)

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	producer    *events.Producer
	kafkaReader *kafka.Reader
	redis       *redis.Client
	logger      *zap.Logger
	topic       string
	testTimeout time.Duration
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second
	s.topic = fmt.Sprintf("admin-events-it-%d", time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	s.dbRepo, err = db.NewRepository(ctx, &db.Config{
		Host:           "localhost",
		Port:           5432,
		User:           "test",
		Password:       "test",
		DBName:         "test",
		SSLMode:        "disable",
		ConnectTimeout: 30 * time.Second,
	}, s.logger)
	s.Require().NoError(err, "database initialization failed")

	s.producer, s.kafkaReader, err = initializeKafkaWithRetry(s.topic)
	s.Require().NoError(err, "kafka initialization failed")

	s.redis = redis.NewClient(&redis.Options{Addr: redisAddr})
	err = backoff.Retry(func() error {
		return s.redis.Ping(ctx).Err()
	}, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
	s.Require().NoError(err, "redis initialization failed")
}

func initializeKafkaWithRetry(topic string) (*events.Producer, *kafka.Reader, error) {
	var producer *events.Producer
	err := backoff.Retry(func() error {
		var err error
		producer, err = events.NewProducer([]string{kafkaBroker}, zap.NewNop(), topic)
		return err
	}, backoff.NewExponentialBackOff())
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer initialization failed: %w", err)
	}

	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", kafkaBroker)
		if err != nil {
			return err
		}
		defer conn.Close()
		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, nil, fmt.Errorf("kafka topic check failed: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{kafkaBroker},
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	return producer, reader, nil
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	err := s.dbRepo.Exec(ctx, `TRUNCATE TABLE establishment_members, establishment_phones,
		establishment_contacts, establishment_addresses, employees, employee_roles,
		establishments, social_media_platforms CASCADE`)
	s.Require().NoError(err, "failed to clean database")
}

func (s *IntegrationTestSuite) TestEstablishmentLifecycleEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	svc := controller.NewEstablishmentService(s.dbRepo, s.producer, s.logger)
	created, err := svc.CreateEstablishment(ctx, models.EstablishmentInput{
		Name:     "Harbor Branch",
		Email:    "harbor@example.com",
		StatusID: 1,
	})
	s.Require().NoError(err)
	s.verifyKafkaEvent(ctx, events.Created, created.ID.String())

	patched, err := svc.PatchEstablishment(ctx, created.ID, models.EstablishmentPatch{Name: utils.Ptr("Harbor Main")})
	s.Require().NoError(err)
	assert.Equal(s.T(), "Harbor Main", patched.Name.Name())
	s.verifyKafkaEvent(ctx, events.Updated, created.ID.String())

	s.Require().NoError(svc.DeleteEstablishment(ctx, created.ID))
	_, err = s.dbRepo.GetEstablishment(ctx, created.ID)
	assert.ErrorIs(s.T(), err, e.ErrNotFound)
	s.verifyKafkaEvent(ctx, events.Deleted, created.ID.String())
}

func (s *IntegrationTestSuite) TestPrimaryPhoneOnPostgres() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	est, err := controller.NewEstablishmentService(s.dbRepo, nil, s.logger).
		CreateEstablishment(ctx, models.EstablishmentInput{Name: "Uptown", Email: "uptown@example.com", StatusID: 1})
	s.Require().NoError(err)

	phones := controller.NewEstablishmentPhoneService(s.dbRepo, nil, s.logger)
	first, err := phones.CreateEstablishmentPhone(ctx, models.EstablishmentPhoneInput{
		EstablishmentID: est.ID.String(), PhoneNumber: "09175550101", IsPrimary: true,
	})
	s.Require().NoError(err)
	second, err := phones.CreateEstablishmentPhone(ctx, models.EstablishmentPhoneInput{
		EstablishmentID: est.ID.String(), PhoneNumber: "09175550102", IsPrimary: true,
	})
	s.Require().NoError(err)

	reloaded, err := phones.GetEstablishmentPhone(ctx, first.ID)
	s.Require().NoError(err)
	assert.False(s.T(), reloaded.IsPrimary)
	assert.True(s.T(), second.IsPrimary)

	_, err = phones.CreateEstablishmentPhone(ctx, models.EstablishmentPhoneInput{
		EstablishmentID: est.ID.String(), PhoneNumber: "09175550102",
	})
	assert.Equal(s.T(), e.Conflict, e.TypeOf(err))
}

func (s *IntegrationTestSuite) TestConsumerInvalidatesCache() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	responseCache := cache.New(s.redis, time.Minute, s.logger)
	consumer := events.NewConsumer([]string{kafkaBroker}, "admin-it-"+s.topic, s.topic, s.logger)
	consumer.RegisterHandler(responseCache.HandleEvent)
	consumer.Start(ctx)
	defer consumer.Close()

	roles := controller.NewEmployeeRoleService(s.dbRepo, s.producer, s.logger)
	role, err := roles.CreateEmployeeRole(ctx, models.EmployeeRoleInput{RoleName: "Barista"})
	s.Require().NoError(err)

	responseCache.Set(ctx, events.EntityEmployeeRole, role.ID.String(), []byte(`{"roleName":"Barista"}`))
	_, ok := responseCache.Get(ctx, events.EntityEmployeeRole, role.ID.String())
	s.Require().True(ok)

	_, err = roles.UpdateEmployeeRole(ctx, role.ID, models.EmployeeRoleInput{RoleName: "Head Barista"})
	s.Require().NoError(err)

	assert.Eventually(s.T(), func() bool {
		_, ok := responseCache.Get(ctx, events.EntityEmployeeRole, role.ID.String())
		return !ok
	}, 15*time.Second, 200*time.Millisecond)
}

// verifyKafkaEvent reads the topic until the event of type for id arrives.
func (s *IntegrationTestSuite) verifyKafkaEvent(ctx context.Context, eventType events.EventType, id string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		require.NoError(s.T(), err, "no %s event received for %s", eventType, id)
		if string(msg.Key) != id {
			s.T().Logf("Skipping message with unmatched key: %s", string(msg.Key))
			continue
		}
		var event events.Event
		require.NoError(s.T(), json.Unmarshal(msg.Value, &event))
		if event.Type != eventType {
			s.T().Logf("Skipping %s while waiting for %s", event.Name(), eventType)
			continue
		}
		assert.Equal(s.T(), id, event.ID)
		assert.Equal(s.T(), events.EntityEstablishment, event.Entity)
		return
	}
}
