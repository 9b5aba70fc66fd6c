package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	assistantx "github.com/fiberlux/odoo-assistant/assistant"
	gatewayx "github.com/fiberlux/odoo-assistant/assistant/gateway"
	botx "github.com/fiberlux/odoo-assistant/bot"
	configx "github.com/fiberlux/odoo-assistant/pkg/config"
	_ "github.com/fiberlux/odoo-assistant/pkg/logger/autoload"
	transcribex "github.com/fiberlux/odoo-assistant/pkg/transcribe"
)

func main() {
	gatewayCfg := configx.MustNew[gatewayx.Config]("")
	if missing := gatewayCfg.UnconfiguredEndpoints(); len(missing) > 0 {
		log.Fatal().Strs("endpoints", missing).Msg("auth tokens are not configured, set them in .env")
	}

	gateway, err := gatewayx.New(*gatewayCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build backend gateway")
	}

	assistant, err := assistantx.New(gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build assistant")
	}

	var botOpts []botx.Option
	whisperCfg := configx.MustNew[transcribex.Config]("OPENAI")
	if whisper, err := transcribex.New(*whisperCfg); err != nil {
		log.Warn().Err(err).Msg("voice transcription disabled")
	} else {
		botOpts = append(botOpts, botx.WithTranscriber(whisper))
	}

	botCfg := configx.MustNew[botx.Config]("")
	b, err := botx.New(*botCfg, assistant, botOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start telegram bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("telegram bot stopped")
	}
	log.Info().Msg("shutdown complete")
}
