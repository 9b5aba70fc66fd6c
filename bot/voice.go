package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	assistantx "github.com/fiberlux/odoo-assistant/assistant"
	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
	intentx "github.com/fiberlux/odoo-assistant/assistant/intent"
)

// Telegram caps voice notes well below this; anything larger is refused.
const maxVoiceBytes = 20 << 20

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	if b.transcriber == nil {
		b.reply(msg, "🎤 Los mensajes de voz no están habilitados")
		return
	}

	audio, err := b.downloadVoice(ctx, msg.Voice.FileID)
	if err != nil {
		log.Warn().Int64("chat", msg.Chat.ID).Err(err).Msg("failed to download voice note")
		b.reply(msg, "❌ No pude descargar el audio, intenta de nuevo")
		return
	}

	for _, text := range voiceReplies(ctx, b.transcriber, b.assistant, audio) {
		b.reply(msg, text)
	}
}

// voiceReplies turns a voice note into the ordered replies to send. A failed
// or empty transcription degrades to the generic help reply; otherwise the
// transcription note is followed by the regular free-text flow.
func voiceReplies(ctx context.Context, t contractx.Transcriber, a *assistantx.Assistant, audio []byte) []string {
	text, err := t.Transcribe(ctx, audio)
	if err != nil {
		log.Warn().Err(err).Msg("transcription failed")
		text = ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{"🎤 No pude entender el audio\n\n" + intentx.HelpMessage()}
	}

	// The transcription re-enters the pipeline as free text.
	replies := []string{fmt.Sprintf("🎤 Transcripción: %s", text)}
	q, rejection := intentx.ResolveText(text)
	if rejection != nil {
		return append(replies, rejection.Message)
	}
	return append(replies, assistantx.Acknowledgment(q), a.Run(ctx, q))
}

func (b *Bot) downloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve voice file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download voice file: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}
