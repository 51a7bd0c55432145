package telegram

import (
	"errors"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"

	"status-tracker/pkg/observer"
	"status-tracker/repositories/subscribers"
)

type MessageType int

const (
	MessageTypeUnknown     MessageType = -1
	MessageTypeWelcome     MessageType = 1
	MessageTypeHelp        MessageType = 2
	MessageTypeSubscribe   MessageType = 3
	MessageTypeUnsubscribe MessageType = 4
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

type Service interface {
	observer.Observer
	ListenAndDispatch() error
}

type Impl struct {
	bot            *gotgbot.Bot
	updater        *ext.Updater
	subscriberRepo subscribers.Repository
	sentCache      *cache.Cache
}
