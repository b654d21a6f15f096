package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "planning-sync/errors"
	"planning-sync/idmap"
	"planning-sync/repositories"
	"planning-sync/schemas"
)

// Handler applies one message's CRUD operation against persistent
// storage and reports the side effect the dispatcher should trigger. A
// nil effect means the operation has no downstream consequence.
type Handler interface {
	Apply(ctx context.Context, msg *schemas.Message) (*Effect, error)
}

var validate = validator.New()

type userCreate struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

type companyCreate struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

type attendanceCreate struct {
	UserID  string `validate:"required"`
	EventID string `validate:"required"`
}

// ---------------------------------------------------------------------
// User
// ---------------------------------------------------------------------

type UserHandler struct {
	users repositories.IUserRepository
	log   *slog.Logger
}

func NewUserHandler(users repositories.IUserRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: logger}
}

func (h *UserHandler) Apply(ctx context.Context, msg *schemas.Message) (*Effect, error) {
	doc, ok := msg.Payload.(*schemas.UserMessage)
	if !ok {
		return nil, fmt.Errorf("%w: user payload", apperrors.ErrDecode)
	}

	switch msg.Operation {
	case schemas.OpCreate:
		required := userCreate{FirstName: doc.FirstName, LastName: doc.LastName, Email: doc.Email}
		if err := validate.Struct(required); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingField, err)
		}
		user := repositories.User{
			ID:        msg.ExternalID,
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			Email:     doc.Email,
			CompanyID: doc.CompanyID,
		}
		if err := h.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectUserCreated, MasterID: msg.ExternalID}, nil

	case schemas.OpUpdate:
		user := repositories.User{
			ID:        msg.ExternalID,
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			Email:     doc.Email,
			CompanyID: doc.CompanyID,
		}
		return nil, h.users.Update(ctx, user)

	case schemas.OpDelete:
		if err := h.users.Delete(ctx, msg.ExternalID); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectUserDeleted, MasterID: msg.ExternalID}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidOperation, msg.Operation)
}

// ---------------------------------------------------------------------
// Company
// ---------------------------------------------------------------------

type CompanyHandler struct {
	companies repositories.ICompanyRepository
	log       *slog.Logger
}

func NewCompanyHandler(companies repositories.ICompanyRepository, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, log: logger}
}

func (h *CompanyHandler) Apply(ctx context.Context, msg *schemas.Message) (*Effect, error) {
	doc, ok := msg.Payload.(*schemas.CompanyMessage)
	if !ok {
		return nil, fmt.Errorf("%w: company payload", apperrors.ErrDecode)
	}

	switch msg.Operation {
	case schemas.OpCreate:
		if err := validate.Struct(companyCreate{Name: doc.Name, Email: doc.Email}); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingField, err)
		}
		company := repositories.Company{ID: msg.ExternalID, Name: doc.Name, Email: doc.Email}
		if err := h.companies.Create(ctx, company); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectCompanyCreated, MasterID: msg.ExternalID}, nil

	case schemas.OpUpdate:
		company := repositories.Company{ID: msg.ExternalID, Name: doc.Name, Email: doc.Email}
		return nil, h.companies.Update(ctx, company)

	case schemas.OpDelete:
		if err := h.companies.Delete(ctx, msg.ExternalID); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectCompanyDeleted, MasterID: msg.ExternalID}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidOperation, msg.Operation)
}

// ---------------------------------------------------------------------
// Event
// ---------------------------------------------------------------------

type EventHandler struct {
	events  repositories.IEventRepository
	mapper  idmap.Mapper
	service string
	log     *slog.Logger
}

func NewEventHandler(events repositories.IEventRepository, mapper idmap.Mapper, service string, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, mapper: mapper, service: service, log: logger}
}

func (h *EventHandler) Apply(ctx context.Context, msg *schemas.Message) (*Effect, error) {
	doc, ok := msg.Payload.(*schemas.EventMessage)
	if !ok {
		return nil, fmt.Errorf("%w: event payload", apperrors.ErrDecode)
	}

	switch msg.Operation {
	case schemas.OpCreate:
		localID, err := h.events.Create(ctx, eventFromDoc(doc))
		if err != nil {
			return nil, err
		}
		return &Effect{
			Kind:     EffectEventCreated,
			MasterID: msg.ExternalID,
			LocalID:  strconv.FormatInt(localID, 10),
		}, nil

	case schemas.OpUpdate:
		localID, err := h.resolveLocalID(ctx, msg.ExternalID)
		if err != nil {
			return nil, err
		}
		event := eventFromDoc(doc)
		event.ID = localID
		return nil, h.events.Update(ctx, event)

	case schemas.OpDelete:
		localID, err := h.resolveLocalID(ctx, msg.ExternalID)
		if errors.Is(err, apperrors.ErrNotFound) {
			// never persisted locally: deleting it is a no-op success
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if err := h.events.Delete(ctx, localID); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectEventDeleted, MasterID: msg.ExternalID}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidOperation, msg.Operation)
}

func (h *EventHandler) resolveLocalID(ctx context.Context, masterID string) (int64, error) {
	raw, err := h.mapper.GetServiceID(ctx, masterID, h.service)
	if errors.Is(err, apperrors.ErrMappingNotFound) {
		return 0, fmt.Errorf("%w: event %q has no local mapping", apperrors.ErrNotFound, masterID)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: resolve event %q: %w", apperrors.ErrSideEffect, masterID, err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: event %q maps to non-numeric id %q", apperrors.ErrNotFound, masterID, raw)
	}
	return id, nil
}

func eventFromDoc(doc *schemas.EventMessage) repositories.Event {
	maxRegistrations, _ := strconv.Atoi(doc.MaxRegistrations)
	availableSeats, _ := strconv.Atoi(doc.AvailableSeats)
	return repositories.Event{
		Summary:          doc.Title,
		Start:            combineDateTime(doc.Date, doc.StartTime),
		End:              combineDateTime(doc.Date, doc.EndTime),
		Location:         doc.Location,
		Description:      doc.Description,
		MaxRegistrations: maxRegistrations,
		AvailableSeats:   availableSeats,
	}
}

func combineDateTime(date, clock string) time.Time {
	if date == "" || clock == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ---------------------------------------------------------------------
// Attendance
// ---------------------------------------------------------------------

type AttendanceHandler struct {
	attendances repositories.IAttendanceRepository
	log         *slog.Logger
}

func NewAttendanceHandler(attendances repositories.IAttendanceRepository, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendances: attendances, log: logger}
}

func (h *AttendanceHandler) Apply(ctx context.Context, msg *schemas.Message) (*Effect, error) {
	doc, ok := msg.Payload.(*schemas.AttendanceMessage)
	if !ok {
		return nil, fmt.Errorf("%w: attendance payload", apperrors.ErrDecode)
	}

	switch msg.Operation {
	case schemas.OpCreate:
		if err := validate.Struct(attendanceCreate{UserID: doc.UserID, EventID: doc.EventID}); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingField, err)
		}
		attendance := repositories.Attendance{ID: msg.ExternalID, UserID: doc.UserID, EventID: doc.EventID}
		if err := h.attendances.Create(ctx, attendance); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectAttendanceCreated, UserID: doc.UserID, EventID: doc.EventID}, nil

	case schemas.OpDelete:
		if err := h.attendances.Delete(ctx, msg.ExternalID); err != nil {
			return nil, err
		}
		return &Effect{Kind: EffectAttendanceDeleted, UserID: doc.UserID, EventID: doc.EventID}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidOperation, msg.Operation)
}
