package constants

import (
	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// Seconds between two poll cycles.
	PollInterval = "POLL_INTERVAL"

	// Path of the JSON file holding the last-seen entry id per product.
	StateFile = "STATE_FILE"

	// Path of the JSON file mapping product names to feed URLs.
	SourcesFile = "SOURCES_FILE"

	// Path of the append-only error log.
	ErrorLogFile = "ERROR_LOG_FILE"

	// Port of the plain-text status page.
	Port = "PORT"

	// Per-feed fetch timeout in seconds.
	FeedTimeout = "FEED_TIMEOUT"

	// User agent sent on feed requests; some status pages block generic bots.
	FeedUserAgent = "FEED_USER_AGENT"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// SQLITE_URL URL, used for the telegram subscriber store.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	defaultPollInterval     = 60
	defaultStateFile        = "state.json"
	defaultSourcesFile      = "sources.json"
	defaultErrorLogFile     = "error.log"
	defaultPort             = 8080
	defaultFeedTimeout      = 10
	defaultFeedUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTelegramBotToken = ""
	defaultSqliteURL        = "status-tracker.db"
	defaultHealthCrontab    = "* * * * *"
	defaultLogLevel         = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		PollInterval:     defaultPollInterval,
		StateFile:        defaultStateFile,
		SourcesFile:      defaultSourcesFile,
		ErrorLogFile:     defaultErrorLogFile,
		Port:             defaultPort,
		FeedTimeout:      defaultFeedTimeout,
		FeedUserAgent:    defaultFeedUserAgent,
		TelegramBotToken: defaultTelegramBotToken,
		SqliteURL:        defaultSqliteURL,
		HealthCronTab:    defaultHealthCrontab,
		LogLevel:         defaultLogLevel.String(),
	}
}
