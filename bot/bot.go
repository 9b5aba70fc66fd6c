// Package bot is the Telegram transport layer: it long-polls for updates,
// hands commands and text to the assistant, and delivers the replies. All
// query semantics live behind it; the bot only moves messages.
package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	assistantx "github.com/fiberlux/odoo-assistant/assistant"
	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
	intentx "github.com/fiberlux/odoo-assistant/assistant/intent"
)

const placeholderToken = "tu_token_de_telegram_aqui"

type Config struct {
	Token         string        `envconfig:"TELEGRAM_TOKEN" default:"tu_token_de_telegram_aqui"`
	UpdateTimeout int           `envconfig:"TELEGRAM_UPDATE_TIMEOUT" default:"30"`
	Debug         bool          `envconfig:"TELEGRAM_DEBUG" default:"false"`
	VoiceTimeout  time.Duration `envconfig:"TELEGRAM_VOICE_TIMEOUT" default:"60s"`
}

// Option customizes a Bot.
type Option func(*Bot)

// WithTranscriber enables the voice-note flow. Without one, voice messages
// get a "not supported" reply.
func WithTranscriber(t contractx.Transcriber) Option {
	return func(b *Bot) {
		b.transcriber = t
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(b *Bot) {
		if client != nil {
			b.httpClient = client
		}
	}
}

type Bot struct {
	api           *tgbotapi.BotAPI
	assistant     *assistantx.Assistant
	transcriber   contractx.Transcriber
	httpClient    *http.Client
	updateTimeout int
}

func New(cfg Config, assistant *assistantx.Assistant, opts ...Option) (*Bot, error) {
	if assistant == nil {
		return nil, errors.New("assistant is required")
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" || token == placeholderToken {
		return nil, errors.New("TELEGRAM_TOKEN is not configured")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	api.Debug = cfg.Debug

	updateTimeout := cfg.UpdateTimeout
	if updateTimeout <= 0 {
		updateTimeout = 30
	}

	voiceTimeout := cfg.VoiceTimeout
	if voiceTimeout <= 0 {
		voiceTimeout = 60 * time.Second
	}

	b := &Bot{
		api:           api,
		assistant:     assistant,
		httpClient:    &http.Client{Timeout: voiceTimeout},
		updateTimeout: updateTimeout,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b, nil
}

// Run registers the command menu and processes updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	log.Info().Str("username", b.api.Self.UserName).Msg("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) registerCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Iniciar bot"},
		tgbotapi.BotCommand{Command: "help", Description: "Ayuda"},
		tgbotapi.BotCommand{Command: intentx.CmdService, Description: "Consultar servicio"},
		tgbotapi.BotCommand{Command: intentx.CmdContracts, Description: "Listar contratos"},
		tgbotapi.BotCommand{Command: intentx.CmdDebtBCP, Description: "Consultar deuda BCP"},
	)
	if _, err := b.api.Request(commands); err != nil {
		log.Warn().Err(err).Msg("failed to register telegram commands")
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	switch {
	case msg.Voice != nil:
		b.handleVoice(ctx, msg)
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Text != "":
		log.Info().Int64("chat", msg.Chat.ID).Msg("text message received")
		b.dispatch(ctx, msg, func() (contractx.Query, *contractx.Rejection) {
			return intentx.ResolveText(msg.Text)
		})
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	name := msg.Command()
	args := strings.Fields(msg.CommandArguments())

	switch name {
	case "start":
		b.reply(msg, assistantx.WelcomeMessage)
	case "help":
		b.reply(msg, assistantx.HelpMessage)
	default:
		b.dispatch(ctx, msg, func() (contractx.Query, *contractx.Rejection) {
			return intentx.ResolveCommand(name, args)
		})
	}
}

// dispatch runs the resolve → acknowledge → execute → reduce flow and sends
// the resulting messages.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message, resolve func() (contractx.Query, *contractx.Rejection)) {
	q, rejection := resolve()
	if rejection != nil {
		b.reply(msg, rejection.Message)
		return
	}
	b.reply(msg, assistantx.Acknowledgment(q))
	b.reply(msg, b.assistant.Run(ctx, q))
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(out); err != nil {
		log.Warn().Int64("chat", msg.Chat.ID).Err(err).Msg("failed to send reply")
	}
}
