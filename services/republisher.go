package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"

	"planning-sync/idmap"
	"planning-sync/pubsub"
	"planning-sync/repositories"
	"planning-sync/schemas"
)

const (
	userRoutingKey  = "user.planning"
	eventRoutingKey = "event.planning"
)

// Republisher rebroadcasts locally processed records so other systems
// see planning-owned state (calendar links, master event ids).
type Republisher struct {
	users   repositories.IUserRepository
	mapper  idmap.Mapper
	pub     pubsub.Publisher
	service string
	log     *slog.Logger
}

func NewRepublisher(
	users repositories.IUserRepository,
	mapper idmap.Mapper,
	pub pubsub.Publisher,
	service string,
	logger *slog.Logger,
) *Republisher {
	return &Republisher{users: users, mapper: mapper, pub: pub, service: service, log: logger}
}

// PublishUser emits the full user document with crud_operation=update and
// the stored calendar link. Every schema element is present, empty where
// unknown, so downstream validators accept the document.
func (r *Republisher) PublishUser(ctx context.Context, userID string) error {
	user, err := r.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user for republish: %w", err)
	}

	doc := schemas.UserMessage{
		RoutingKey:   userRoutingKey,
		Operation:    string(schemas.OpUpdate),
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		CompanyID:    user.CompanyID,
		CalendarLink: user.CalendarLink,
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal user document: %w", err)
	}
	if err := r.pub.Publish(ctx, userRoutingKey, body); err != nil {
		return fmt.Errorf("publish user document: %w", err)
	}
	r.log.Info("user republished", slog.String("user_id", userID))
	return nil
}

// PublishEvent issues a fresh master id for a locally created event and
// broadcasts it as a create message.
func (r *Republisher) PublishEvent(ctx context.Context, event repositories.Event) error {
	masterID, err := r.mapper.CreateMasterID(ctx, strconv.FormatInt(event.ID, 10), r.service)
	if err != nil {
		return fmt.Errorf("create master id for event %d: %w", event.ID, err)
	}

	doc := schemas.EventMessage{
		RoutingKey:       eventRoutingKey,
		Operation:        string(schemas.OpCreate),
		ID:               masterID,
		Title:            event.Summary,
		Date:             event.Start.Format("2006-01-02"),
		StartTime:        event.Start.Format("15:04:05"),
		EndTime:          event.End.Format("15:04:05"),
		Location:         event.Location,
		Description:      event.Description,
		MaxRegistrations: strconv.Itoa(event.MaxRegistrations),
		AvailableSeats:   strconv.Itoa(event.AvailableSeats),
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal event document: %w", err)
	}
	if err := r.pub.Publish(ctx, eventRoutingKey, body); err != nil {
		return fmt.Errorf("publish event document: %w", err)
	}
	r.log.Info("event republished",
		slog.Int64("event_id", event.ID), slog.String("master_id", masterID))
	return nil
}
