package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"planning-sync/calendar"
	apperrors "planning-sync/errors"
	"planning-sync/mocks"
	"planning-sync/repositories"
	"planning-sync/schemas"
)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

type coordinatorFixture struct {
	coordinator *Coordinator
	users       repositories.IUserRepository
	events      repositories.IEventRepository
	mapper      *mocks.MockMapper
	cal         *mocks.MockClient
	pub         *mocks.MockPublisher
}

func newCoordinatorFixture(t *testing.T, ctrl *gomock.Controller) *coordinatorFixture {
	t.Helper()
	req := require.New(t)
	logger := slog.Default()

	db, err := repositories.Open(filepath.Join(t.TempDir(), "planning.db"))
	req.NoError(err)
	req.NoError(repositories.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	users := repositories.NewUserRepository(db, logger)
	events := repositories.NewEventRepository(db, logger)
	mapper := mocks.NewMockMapper(ctrl)
	cal := mocks.NewMockClient(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	repub := NewRepublisher(users, mapper, pub, "planning", logger)
	coordinator := NewCoordinator(users, events, mapper, cal, repub, CoordinatorConfig{
		Service:             "planning",
		CalendarSummary:     "Planning",
		Timezone:            "Europe/Brussels",
		ServiceAccountEmail: "svc@project.iam.gserviceaccount.com",
	}, logger)

	return &coordinatorFixture{
		coordinator: coordinator,
		users:       users,
		events:      events,
		mapper:      mapper,
		cal:         cal,
		pub:         pub,
	}
}

func TestCoordinator_OnUserCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("should create the calendar once and persist the link", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		req.NoError(f.users.Create(ctx, repositories.User{ID: "user-1", FirstName: "John"}))

		f.mapper.EXPECT().
			AddServiceID(gomock.Any(), "user-1", "planning", "user-1").
			Return(nil).Times(2)
		f.cal.EXPECT().
			CreateCalendar(gomock.Any(), "Planning", "Europe/Brussels").
			Return("cal-1", nil).Times(1)
		f.cal.EXPECT().
			ShareCalendar(gomock.Any(), "cal-1", calendar.AccessRule{ScopeType: "default", Role: "reader"}).
			Return(nil).Times(1)
		f.cal.EXPECT().
			ShareCalendar(gomock.Any(), "cal-1", calendar.AccessRule{
				ScopeType: "user", ScopeValue: "svc@project.iam.gserviceaccount.com", Role: "owner",
			}).
			Return(nil).Times(1)
		f.pub.EXPECT().Publish(gomock.Any(), "user.planning", gomock.Any()).Return(nil).Times(1)

		link, err := f.coordinator.OnUserCreated(ctx, "user-1")
		req.NoError(err)
		req.Equal("https://calendar.google.com/calendar/embed?src=cal-1", link)

		user, err := f.users.Get(ctx, "user-1")
		req.NoError(err)
		req.Equal("cal-1", user.CalendarID)
		req.Equal(link, user.CalendarLink)

		// redelivery of the same create reuses the stored link
		again, err := f.coordinator.OnUserCreated(ctx, "user-1")
		req.NoError(err)
		req.Equal(link, again)
	})

	t.Run("should fail with ErrSideEffect when the mapping cannot be registered", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		f.mapper.EXPECT().
			AddServiceID(gomock.Any(), "user-1", "planning", "user-1").
			Return(context.DeadlineExceeded)

		_, err := f.coordinator.OnUserCreated(ctx, "user-1")
		req.ErrorIs(err, apperrors.ErrSideEffect)
	})
}

func TestCoordinator_OnAttendanceChanged(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	seed := func(t *testing.T, f *coordinatorFixture) int64 {
		req := require.New(t)
		req.NoError(f.users.Create(ctx, repositories.User{ID: "user-1"}))
		req.NoError(f.users.SetCalendar(ctx, "user-1", "cal-1", calendar.EmbedLink("cal-1")))
		eventID, err := f.events.Create(ctx, repositories.Event{Summary: "Go Meetup", Start: start, End: end})
		req.NoError(err)
		return eventID
	}

	t.Run("should add the event to the attendee's calendar", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)
		eventID := seed(t, f)

		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-user", "planning").Return("user-1", nil)
		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-event", "planning").
			Return(formatID(eventID), nil)
		f.cal.EXPECT().
			AddEvent(gomock.Any(), "cal-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, entry calendar.Event) (string, error) {
				req.Equal("Go Meetup", entry.Summary)
				req.True(entry.Start.Equal(start))
				return "gcal-entry-1", nil
			})

		req.NoError(f.coordinator.OnAttendanceChanged(ctx, "master-user", "master-event", schemas.OpCreate))
	})

	t.Run("should remove the matching calendar entry on delete", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)
		eventID := seed(t, f)

		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-user", "planning").Return("user-1", nil)
		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-event", "planning").
			Return(formatID(eventID), nil)
		f.cal.EXPECT().
			ListEvents(gomock.Any(), "cal-1", gomock.Any(), gomock.Any()).
			Return([]calendar.Event{
				{ID: "other", Summary: "Another Talk", Start: start.Add(time.Hour)},
				{ID: "gcal-entry-1", Summary: "Go Meetup", Start: start},
			}, nil)
		f.cal.EXPECT().DeleteEvent(gomock.Any(), "cal-1", "gcal-entry-1").Return(nil)

		req.NoError(f.coordinator.OnAttendanceChanged(ctx, "master-user", "master-event", schemas.OpDelete))
	})

	t.Run("should succeed when no calendar entry matches on delete", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)
		eventID := seed(t, f)

		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-user", "planning").Return("user-1", nil)
		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-event", "planning").
			Return(formatID(eventID), nil)
		f.cal.EXPECT().
			ListEvents(gomock.Any(), "cal-1", gomock.Any(), gomock.Any()).
			Return(nil, nil)

		req.NoError(f.coordinator.OnAttendanceChanged(ctx, "master-user", "master-event", schemas.OpDelete))
	})

	t.Run("should fail with ErrSideEffect when the user mapping is unresolved", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-user", "planning").
			Return("", apperrors.ErrMappingNotFound)

		err := f.coordinator.OnAttendanceChanged(ctx, "master-user", "master-event", schemas.OpCreate)
		req.ErrorIs(err, apperrors.ErrSideEffect)
	})

	t.Run("should fail with ErrSideEffect when the attendee has no calendar", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		req.NoError(f.users.Create(ctx, repositories.User{ID: "user-2"}))
		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-user", "planning").Return("user-2", nil)
		f.mapper.EXPECT().GetServiceID(gomock.Any(), "master-event", "planning").Return("1", nil)

		err := f.coordinator.OnAttendanceChanged(ctx, "master-user", "master-event", schemas.OpCreate)
		req.ErrorIs(err, apperrors.ErrSideEffect)
	})
}

func TestCoordinator_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("should register the local id mapping for a created event", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		f.mapper.EXPECT().AddServiceID(gomock.Any(), "master-event", "planning", "42").Return(nil)

		req.NoError(f.coordinator.Run(ctx, &Effect{
			Kind: EffectEventCreated, MasterID: "master-event", LocalID: "42",
		}))
	})

	t.Run("should release the mapping for a deleted entity", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newCoordinatorFixture(t, ctrl)

		f.mapper.EXPECT().DeleteServiceID(gomock.Any(), "user-1", "planning").Return(nil)

		req.NoError(f.coordinator.Run(ctx, &Effect{Kind: EffectUserDeleted, MasterID: "user-1"}))
	})
}
