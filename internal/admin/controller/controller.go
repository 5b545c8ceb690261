// Package controller implements the service layer of the admin backend.
// Every mutating operation validates its input, checks referenced and
// conflicting rows, and persists inside a single read-committed
// transaction. Entity-change events are sent after commit.
package controller

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
)

var tracer = otel.Tracer("github.com/testnest/admin/internal/admin/controller")

type EventProducer interface {
	Produce(event events.Event)
}

// Transactor runs fn against a repository bound to one transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// service holds what every entity service shares.
type service struct {
	entity   string
	producer EventProducer
	logger   *zap.Logger
}

func newService(entity string, producer EventProducer, logger *zap.Logger) service {
	return service{
		entity:   entity,
		producer: producer,
		logger:   logger.Named(entity + "_service"),
	}
}

// start opens a span named after the entity and operation.
func (s service) start(ctx context.Context, op string, id fmt.Stringer) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, s.entity+"."+op)
	span.SetAttributes(attribute.String("entity", s.entity))
	if id != nil {
		span.SetAttributes(attribute.String("entity.id", id.String()))
	}
	return ctx, span
}

// fail records err on span and returns it unchanged.
func (s service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, e.TypeOf(err).String())
	if e.TypeOf(err) == e.Internal {
		s.logger.Error("operation failed", zap.Error(err))
	}
	return err
}

// publish announces a committed change. Producers only enqueue, so the
// caller is not held up by the broker.
func (s service) publish(eventType events.EventType, id fmt.Stringer) {
	if s.producer == nil {
		return
	}
	event := events.NewEvent(eventType, s.entity, id)
	s.producer.Produce(event)
	s.logger.Debug("event published",
		zap.String("event", event.Name()),
		zap.String("id", event.ID),
	)
}

// publishDemoted announces the siblings that lost the primary flag.
func publishDemoted[K any](s service, demoted []ids.ID[K]) {
	for _, id := range demoted {
		s.publish(events.Updated, id)
	}
}

// missing turns a storage not-found into a NotFound failure naming what.
func missing(err error, what string, id fmt.Stringer) error {
	if errors.Is(err, e.ErrNotFound) {
		return e.NotFoundf("%s with ID '%s' not found.", what, id)
	}
	return err
}

func requireEstablishment(ctx context.Context, tx *db.Repository, id ids.EstablishmentID) error {
	found, err := tx.EstablishmentExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return e.NotFoundf("Establishment with ID '%s' not found.", id)
	}
	return nil
}

func requireEmployeeRole(ctx context.Context, tx *db.Repository, id ids.EmployeeRoleID) error {
	found, err := tx.EmployeeRoleExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return e.NotFoundf("Employee role with ID '%s' not found.", id)
	}
	return nil
}

// sameEstablishment rejects an update whose establishment differs from the
// stored one.
func sameEstablishment(what string, supplied, stored ids.EstablishmentID) error {
	if supplied.Equal(stored) {
		return nil
	}
	return e.Unauthorizedf(
		"Cannot update %s. The provided EstablishmentId '%s' does not match the existing %s's EstablishmentId '%s'.",
		what, supplied, what, stored)
}

// deletePrimaryNotAllowed is returned when deleting the primary row of an
// establishment.
func deletePrimaryNotAllowed(what string, establishmentID ids.EstablishmentID) error {
	return e.Validationf("DeletionNotAllowed",
		"Cannot delete the primary %s for Establishment ID '%s'. Please set another %s as primary first.",
		what, establishmentID, what)
}

// changed reports whether a patch value is present and differs from current.
func changed[T comparable](patch *T, current T) bool {
	return patch != nil && *patch != current
}

// valueOr returns *patch when present, otherwise current.
func valueOr[T any](patch *T, current T) T {
	if patch == nil {
		return current
	}
	return *patch
}
