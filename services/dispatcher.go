package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "planning-sync/errors"
	"planning-sync/observability"
	"planning-sync/schemas"
)

// Outcome is the terminal state a message reaches.
type Outcome string

const (
	OutcomeDone     Outcome = "done"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// SideEffector triggers the downstream consequences of a committed CRUD
// operation.
type SideEffector interface {
	Run(ctx context.Context, effect *Effect) error
}

const maxRetryDelay = 30 * time.Second

// Dispatcher runs each message through
// decode -> validate -> route -> apply -> side effect, converting every
// failure into a terminal outcome. No error escapes Dispatch; failures
// surface only through logs and monitoring events.
type Dispatcher struct {
	registry      *schemas.Registry
	handlers      map[schemas.MessageType]Handler
	effects       SideEffector
	monitor       *observability.Monitor
	log           *slog.Logger
	retryAttempts int
	retryDelay    time.Duration
}

func NewDispatcher(
	registry *schemas.Registry,
	effects SideEffector,
	monitor *observability.Monitor,
	logger *slog.Logger,
	retryAttempts int,
	retryDelay time.Duration,
) *Dispatcher {
	return &Dispatcher{
		registry:      registry,
		handlers:      make(map[schemas.MessageType]Handler),
		effects:       effects,
		monitor:       monitor,
		log:           logger,
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
	}
}

func (d *Dispatcher) Register(t schemas.MessageType, h Handler) {
	d.handlers[t] = h
}

// Dispatch processes one raw message body to a terminal state.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) Outcome {
	msg, err := schemas.Decode(body)
	if err != nil {
		// structurally invalid input never becomes valid: drop, no retry
		if errors.Is(err, apperrors.ErrUnknownMessageType) {
			return d.reject(ctx, "validate_message", err)
		}
		return d.reject(ctx, "decode_message", err)
	}

	if err := d.registry.Validate(msg); err != nil {
		return d.reject(ctx, "validate_message", err)
	}

	handler, ok := d.handlers[msg.Type]
	if !ok {
		return d.reject(ctx, "route_message", fmt.Errorf("no handler registered for type %q", msg.Type))
	}

	function := fmt.Sprintf("%s_%s", msg.Type, msg.Operation)
	effect, err := d.apply(ctx, handler, msg)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingField),
			errors.Is(err, apperrors.ErrInvalidOperation),
			errors.Is(err, apperrors.ErrDuplicateID):
			return d.reject(ctx, function, err)
		case errors.Is(err, apperrors.ErrNotFound):
			d.log.Warn("operation target missing, dropping message",
				slog.String("type", string(msg.Type)),
				slog.String("id", msg.ExternalID),
				slog.Any("error", err))
			d.monitor.Emit(ctx, function, err.Error(), true)
			return OutcomeFailed
		default:
			d.log.Error("handler failed",
				slog.String("type", string(msg.Type)),
				slog.String("id", msg.ExternalID),
				slog.Any("error", err))
			d.monitor.Emit(ctx, function, err.Error(), true)
			return OutcomeFailed
		}
	}

	if effect != nil && effect.Kind != EffectNone {
		if err := d.effects.Run(ctx, effect); err != nil {
			// the CRUD commit stands; the record stays persisted without
			// (or with stale) calendar state until reconciliation
			d.log.Error("side effect failed",
				slog.String("type", string(msg.Type)),
				slog.String("id", msg.ExternalID),
				slog.Any("error", err))
			d.monitor.Emit(ctx, function, err.Error(), true)
			return OutcomeFailed
		}
	}

	d.monitor.Emit(ctx, function,
		fmt.Sprintf("%s %q processed successfully", msg.Type, msg.ExternalID), false)
	return OutcomeDone
}

// apply runs the handler, retrying transient storage failures with
// doubling backoff. All other failure kinds are final on first sight.
func (d *Dispatcher) apply(ctx context.Context, handler Handler, msg *schemas.Message) (*Effect, error) {
	var lastErr error
	delay := d.retryDelay

	for attempt := 0; attempt <= d.retryAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			if delay *= 2; delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}

		effect, err := handler.Apply(ctx, msg)
		if err == nil {
			return effect, nil
		}
		lastErr = err
		if !errors.Is(err, apperrors.ErrStorage) {
			return nil, err
		}
		d.log.Warn("storage failure, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("id", msg.ExternalID),
			slog.Any("error", err))
	}
	return nil, lastErr
}

func (d *Dispatcher) reject(ctx context.Context, function string, err error) Outcome {
	d.log.Warn("message rejected", slog.String("function", function), slog.Any("error", err))
	d.monitor.Emit(ctx, function, err.Error(), true)
	return OutcomeRejected
}
