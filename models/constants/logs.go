package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogProduct       = "product"
	LogFeedURL       = "feedURL"
	LogEntryID       = "entryID"
	LogEntryTitle    = "entryTitle"
	LogSourceNumber  = "sourceNumber"
	LogChangeNumber  = "changeNumber"
	LogListener      = "listener"
	LogLevelFallback = zerolog.InfoLevel
)
