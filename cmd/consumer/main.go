package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"planning-sync/calendar"
	"planning-sync/idmap"
	"planning-sync/observability"
	"planning-sync/pubsub"
	"planning-sync/repositories"
	"planning-sync/schemas"
	"planning-sync/services"
)

// serviceName identifies this system in the shared master-id registry,
// the monitoring documents and the heartbeat.
const serviceName = "planning"

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consumer terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and manages the consumer lifecycle, so
// deferred cleanup executes before the process exits.
func run() (int, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := observability.NewLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := repositories.Open(config.DatabasePath)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing database...")
		_ = db.Close()
	}()
	if err := repositories.Migrate(db); err != nil {
		return exitRuntime, err
	}

	// Broker
	conn, err := pubsub.DialWithRetry(ctx, pubsub.ConnectOptions{
		URL:      config.RabbitURL,
		Attempts: config.DialAttempts,
		Delay:    config.DialDelay,
		Logger:   logger,
	})
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing broker connection...")
		_ = conn.Close()
	}()

	publisher, err := pubsub.NewPublisher(conn, config.Exchange, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("publisher setup failed: %w", err)
	}
	monitor := observability.NewMonitor(serviceName, publisher, logger)

	// Calendar provider
	credentials, err := os.ReadFile(config.CredentialsFile)
	if err != nil {
		return exitConfig, fmt.Errorf("read credentials: %w", err)
	}
	cal, err := calendar.NewGoogleClient(ctx, credentials, logger)
	if err != nil {
		return exitRuntime, err
	}

	// Domain wiring
	mapper := idmap.NewClient(config.MasterIDBaseURL, config.MasterIDTimeout, logger)
	users := repositories.NewUserRepository(db, logger)
	companies := repositories.NewCompanyRepository(db, logger)
	events := repositories.NewEventRepository(db, logger)
	attendances := repositories.NewAttendanceRepository(db, logger)

	republisher := services.NewRepublisher(users, mapper, publisher, serviceName, logger)
	coordinator := services.NewCoordinator(users, events, mapper, cal, republisher,
		services.CoordinatorConfig{
			Service:             serviceName,
			CalendarSummary:     config.CalendarSummary,
			Timezone:            config.CalendarTimezone,
			ServiceAccountEmail: config.ServiceAccount,
		}, logger)

	dispatcher := services.NewDispatcher(schemas.NewRegistry(), coordinator, monitor, logger,
		config.RetryAttempts, config.RetryDelay)
	dispatcher.Register(schemas.TypeUser, services.NewUserHandler(users, logger))
	dispatcher.Register(schemas.TypeCompany, services.NewCompanyHandler(companies, logger))
	dispatcher.Register(schemas.TypeEvent, services.NewEventHandler(events, mapper, serviceName, logger))
	dispatcher.Register(schemas.TypeAttendance, services.NewAttendanceHandler(attendances, logger))

	// Background loops
	heartbeat := observability.NewHeartbeat(serviceName, publisher, config.HeartbeatEvery, logger)
	go heartbeat.Run(ctx)

	if config.CalendarID != "" {
		fetcher := services.NewEventFetcher(cal, events, republisher,
			config.CalendarID, config.FetchInterval, config.FetchLookback, logger)
		go fetcher.Run(ctx)
	}

	// Consume until a signal arrives or the broker channel closes.
	bindings := []string{"user.#", "company.#", "event.#", "attendance.#"}
	consumer := pubsub.NewConsumer(conn, config.Exchange, config.Queue, bindings, logger)
	if err := consumer.Run(ctx, func(ctx context.Context, body []byte) {
		dispatcher.Dispatch(ctx, body)
	}); err != nil && !errors.Is(err, context.Canceled) {
		return exitRuntime, fmt.Errorf("consumer error: %w", err)
	}

	logger.Info("Program stopped cleanly")
	return exitOK, nil
}
