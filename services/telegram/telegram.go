package telegram

import (
	"fmt"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"status-tracker/models/entities"
	"status-tracker/pkg/observer"
	"status-tracker/repositories/subscribers"
	"status-tracker/services/incident"
)

// State saves are best effort, so the same incident can be re-detected after
// a failed save. Messages already pushed within this window are not resent.
const resendSuppressionTTL = 6 * time.Hour

func New(token string, subscriberRepo subscribers.Repository) (*Impl, error) {
	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{
		bot:            b,
		subscriberRepo: subscriberRepo,
		sentCache:      cache.New(resendSuppressionTTL, 2*resendSuppressionTTL),
	}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	service.updater.Idle()

	return nil
}

// OnNotify pushes one detected incident to every subscriber.
func (service *Impl) OnNotify(e observer.Event) {
	key := e.Product + "|" + e.Entry.ID
	if _, found := service.sentCache.Get(key); found {
		log.Debug().Str("product", e.Product).Msg("Incident already pushed recently, skipping telegram send")
		return
	}
	service.sentCache.Set(key, true, resendSuppressionTTL)

	users, err := service.subscriberRepo.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("Cannot fetch subscribers, incident not pushed")
		return
	}

	msg := buildIncidentMessage(e.Product, e.Entry)
	for _, user := range users {
		log.Info().Int64("chatID", user.ChatID).Str("product", e.Product).Msg("send incident notification")
		service.bot.SendMessage(user.ChatID, msg, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	}
}

func buildIncidentMessage(product string, entry *entities.Entry) string {
	msg := "🚨 *New incident detected!*\n\n"
	msg += fmt.Sprintf("```\n%s\n```\n", incident.FormatNotification(product, entry))
	if entry.PublishedAt != nil {
		msg += fmt.Sprintf("🕒 Published %s\n", humanize.Time(*entry.PublishedAt))
	}
	if entry.Link != "" {
		msg += fmt.Sprintf("🔗 %s\n", entry.Link)
	}
	return msg
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unknown").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnknown), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) subscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "subscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.subscriberRepo.SaveOrUpdate(entities.Subscriber{ChatID: ctx.EffectiveChat.Id, Name: ctx.EffectiveChat.Username})
	if err != nil {
		log.Error().Err(err).Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on saved")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeSubscribe), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) unsubscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unsubscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.subscriberRepo.Delete(entities.Subscriber{ChatID: ctx.EffectiveChat.Id})
	if err != nil {
		log.Error().Err(err).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on deleted")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnsubscribe), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeWelcome:
		msg := "👋 Hi! I'm the *Status Tracker* bot 🤖\n\n"
		msg += "I watch vendor status feeds and ping you the moment one of them reports a new incident.\n\n"
		msg += "✅ Type `/subscribe` to start receiving incident alerts.\n"
		msg += "❌ Type `/unsubscribe` to stop them at any time.\n"
		msg += "💬 Type `/help` for the full command list."
		return msg

	case MessageTypeHelp:
		msg := "🤖 *Status Tracker* – Help 📢\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "✅ `/subscribe` – Receive an alert for every new incident.\n"
		msg += "❌ `/unsubscribe` – Stop receiving alerts.\n"
		msg += "💡 `/help` – Show this help message.\n"
		return msg

	case MessageTypeSubscribe:
		msg := "🎉 *Subscription confirmed!* ✅\n\n"
		msg += "You'll get a message whenever a tracked status feed reports something new. "
		msg += "Type `/unsubscribe` whenever you want out.\n"
		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 *Unsubscribed.*\n\n"
		msg += "No more incident alerts. Type `/subscribe` if you change your mind.\n"
		return msg

	default:
		msg := "😔 I don't know that command.\n\n"
		msg += "Type `/help` for the list of things I understand."
		return msg
	}
}
