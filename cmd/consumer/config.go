package main

import "time"

type Config struct {
	RabbitURL        string        `env:"RABBITMQ_URL,required=true"`
	Exchange         string        `env:"RABBITMQ_EXCHANGE,default=amq.topic"`
	Queue            string        `env:"RABBITMQ_QUEUE,default=planning"`
	DialAttempts     int           `env:"RABBITMQ_DIAL_ATTEMPTS,default=10"`
	DialDelay        time.Duration `env:"RABBITMQ_DIAL_DELAY,default=1s"`
	DatabasePath     string        `env:"DATABASE_PATH,required=true"`
	MasterIDBaseURL  string        `env:"MASTERID_BASE_URL,required=true"`
	MasterIDTimeout  time.Duration `env:"MASTERID_TIMEOUT,default=10s"`
	CredentialsFile  string        `env:"GOOGLE_CREDENTIALS_FILE,required=true"`
	ServiceAccount   string        `env:"SERVICE_ACCOUNT_EMAIL,required=true"`
	CalendarSummary  string        `env:"CALENDAR_SUMMARY,default=Planning"`
	CalendarID       string        `env:"SHARED_CALENDAR_ID"`
	CalendarTimezone string        `env:"CALENDAR_TIMEZONE,default=Europe/Brussels"`
	HeartbeatEvery   time.Duration `env:"HEARTBEAT_INTERVAL,default=1s"`
	FetchInterval    time.Duration `env:"FETCH_INTERVAL,default=1m"`
	FetchLookback    time.Duration `env:"FETCH_LOOKBACK,default=24h"`
	RetryAttempts    int           `env:"STORAGE_RETRY_ATTEMPTS,default=3"`
	RetryDelay       time.Duration `env:"STORAGE_RETRY_DELAY,default=500ms"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
}
