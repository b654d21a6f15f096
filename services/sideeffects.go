package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"planning-sync/calendar"
	apperrors "planning-sync/errors"
	"planning-sync/idmap"
	"planning-sync/repositories"
	"planning-sync/schemas"
)

// Coordinator invokes the calendar adapter and the outbound republisher
// after a successful CRUD commit. A coordinator failure never rolls the
// commit back; the dispatcher reports it and the record stays persisted
// without calendar state.
type Coordinator struct {
	users               repositories.IUserRepository
	events              repositories.IEventRepository
	mapper              idmap.Mapper
	cal                 calendar.Client
	repub               *Republisher
	service             string
	calendarSummary     string
	timezone            string
	serviceAccountEmail string
	log                 *slog.Logger
}

type CoordinatorConfig struct {
	Service             string
	CalendarSummary     string
	Timezone            string
	ServiceAccountEmail string
}

func NewCoordinator(
	users repositories.IUserRepository,
	events repositories.IEventRepository,
	mapper idmap.Mapper,
	cal calendar.Client,
	repub *Republisher,
	cfg CoordinatorConfig,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		users:               users,
		events:              events,
		mapper:              mapper,
		cal:                 cal,
		repub:               repub,
		service:             cfg.Service,
		calendarSummary:     cfg.CalendarSummary,
		timezone:            cfg.Timezone,
		serviceAccountEmail: cfg.ServiceAccountEmail,
		log:                 logger,
	}
}

// Run maps a handler effect to its downstream actions.
func (c *Coordinator) Run(ctx context.Context, effect *Effect) error {
	switch effect.Kind {
	case EffectUserCreated:
		_, err := c.OnUserCreated(ctx, effect.MasterID)
		return err
	case EffectCompanyCreated:
		return c.registerMapping(ctx, effect.MasterID, effect.MasterID)
	case EffectEventCreated:
		return c.registerMapping(ctx, effect.MasterID, effect.LocalID)
	case EffectUserDeleted, EffectCompanyDeleted, EffectEventDeleted:
		return c.releaseMapping(ctx, effect.MasterID)
	case EffectAttendanceCreated:
		return c.OnAttendanceChanged(ctx, effect.UserID, effect.EventID, schemas.OpCreate)
	case EffectAttendanceDeleted:
		return c.OnAttendanceChanged(ctx, effect.UserID, effect.EventID, schemas.OpDelete)
	}
	return nil
}

// OnUserCreated registers the id mapping, creates or reuses the planning
// calendar, persists the embed link on the user row and republishes the
// user so other systems pick up the link. The calendar pair is written
// exactly once: a user that already carries a link keeps it.
func (c *Coordinator) OnUserCreated(ctx context.Context, userID string) (string, error) {
	if err := c.mapper.AddServiceID(ctx, userID, c.service, userID); err != nil {
		return "", fmt.Errorf("%w: register user mapping: %w", apperrors.ErrSideEffect, err)
	}

	user, err := c.users.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: load user %q: %w", apperrors.ErrSideEffect, userID, err)
	}
	if user.CalendarLink != "" {
		c.log.Debug("calendar already linked", slog.String("user_id", userID))
		return user.CalendarLink, nil
	}

	calendarID, err := c.cal.CreateCalendar(ctx, c.calendarSummary, c.timezone)
	if err != nil {
		return "", fmt.Errorf("%w: create calendar: %w", apperrors.ErrSideEffect, err)
	}
	if err := c.cal.ShareCalendar(ctx, calendarID, calendar.AccessRule{
		ScopeType: "default", Role: "reader",
	}); err != nil {
		return "", fmt.Errorf("%w: share calendar publicly: %w", apperrors.ErrSideEffect, err)
	}
	if err := c.cal.ShareCalendar(ctx, calendarID, calendar.AccessRule{
		ScopeType: "user", ScopeValue: c.serviceAccountEmail, Role: "owner",
	}); err != nil {
		return "", fmt.Errorf("%w: grant owner access: %w", apperrors.ErrSideEffect, err)
	}

	link := calendar.EmbedLink(calendarID)
	if err := c.users.SetCalendar(ctx, userID, calendarID, link); err != nil {
		return "", fmt.Errorf("%w: persist calendar link: %w", apperrors.ErrSideEffect, err)
	}
	if err := c.repub.PublishUser(ctx, userID); err != nil {
		return "", fmt.Errorf("%w: republish user %q: %w", apperrors.ErrSideEffect, userID, err)
	}
	return link, nil
}

// OnAttendanceChanged resolves local ids from the master ids and adds or
// removes the event on the attending user's calendar.
func (c *Coordinator) OnAttendanceChanged(ctx context.Context, masterUserID, masterEventID string, op schemas.Operation) error {
	localUserID, err := c.mapper.GetServiceID(ctx, masterUserID, c.service)
	if err != nil {
		return fmt.Errorf("%w: resolve user %q: %w", apperrors.ErrSideEffect, masterUserID, err)
	}
	rawEventID, err := c.mapper.GetServiceID(ctx, masterEventID, c.service)
	if err != nil {
		return fmt.Errorf("%w: resolve event %q: %w", apperrors.ErrSideEffect, masterEventID, err)
	}
	localEventID, err := strconv.ParseInt(rawEventID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: event %q maps to non-numeric id %q", apperrors.ErrSideEffect, masterEventID, rawEventID)
	}

	user, err := c.users.Get(ctx, localUserID)
	if err != nil {
		return fmt.Errorf("%w: load user %q: %w", apperrors.ErrSideEffect, localUserID, err)
	}
	if user.CalendarID == "" {
		return fmt.Errorf("%w: user %q has no calendar", apperrors.ErrSideEffect, localUserID)
	}
	event, err := c.events.Get(ctx, localEventID)
	if err != nil {
		return fmt.Errorf("%w: load event %d: %w", apperrors.ErrSideEffect, localEventID, err)
	}

	switch op {
	case schemas.OpCreate:
		entry := calendar.Event{
			Summary:     event.Summary,
			Location:    event.Location,
			Description: event.Description,
			Start:       event.Start,
			End:         event.End,
		}
		if _, err := c.cal.AddEvent(ctx, user.CalendarID, entry); err != nil {
			return fmt.Errorf("%w: add calendar event: %w", apperrors.ErrSideEffect, err)
		}
	case schemas.OpDelete:
		if err := c.removeMatchingEvent(ctx, user.CalendarID, event); err != nil {
			return err
		}
	}
	return nil
}

// removeMatchingEvent deletes the calendar entry matching the stored
// event's identity (summary and start time). No match is an idempotent
// success.
func (c *Coordinator) removeMatchingEvent(ctx context.Context, calendarID string, event repositories.Event) error {
	entries, err := c.cal.ListEvents(ctx, calendarID,
		event.Start.Add(-time.Hour), event.End.Add(time.Hour))
	if err != nil {
		return fmt.Errorf("%w: list calendar events: %w", apperrors.ErrSideEffect, err)
	}
	for _, entry := range entries {
		if entry.Summary == event.Summary && entry.Start.Equal(event.Start) {
			if err := c.cal.DeleteEvent(ctx, calendarID, entry.ID); err != nil {
				return fmt.Errorf("%w: delete calendar event: %w", apperrors.ErrSideEffect, err)
			}
			return nil
		}
	}
	c.log.Debug("no calendar entry matched for removal",
		slog.String("calendar_id", calendarID), slog.String("summary", event.Summary))
	return nil
}

func (c *Coordinator) registerMapping(ctx context.Context, masterID, localID string) error {
	if err := c.mapper.AddServiceID(ctx, masterID, c.service, localID); err != nil {
		return fmt.Errorf("%w: register mapping %q: %w", apperrors.ErrSideEffect, masterID, err)
	}
	return nil
}

func (c *Coordinator) releaseMapping(ctx context.Context, masterID string) error {
	if err := c.mapper.DeleteServiceID(ctx, masterID, c.service); err != nil {
		return fmt.Errorf("%w: release mapping %q: %w", apperrors.ErrSideEffect, masterID, err)
	}
	return nil
}
