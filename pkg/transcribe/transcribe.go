// Package transcribe converts voice-note audio into text through the OpenAI
// Whisper API. Transcribed text re-enters the assistant as free-form input.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const placeholderAPIKey = "configura_tu_api_key_de_openai"

type Config struct {
	APIKey   string        `envconfig:"API_KEY" split_words:"true" default:"configura_tu_api_key_de_openai"`
	Model    string        `split_words:"true" default:"whisper-1"`
	Timeout  time.Duration `split_words:"true" default:"60s"`
	Language string        `split_words:"true" default:"es"`
}

type Whisper struct {
	client   openai.Client
	model    openai.AudioModel
	language string
}

func New(cfg Config) (*Whisper, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" || apiKey == placeholderAPIKey {
		return nil, errors.New("openai api key is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	)

	return &Whisper{
		client:   client,
		model:    openai.AudioModel(strings.TrimSpace(cfg.Model)),
		language: strings.TrimSpace(cfg.Language),
	}, nil
}

// Transcribe sends the audio buffer to Whisper and returns the recognized
// text, trimmed. Telegram voice notes arrive as OGG/Opus.
func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio buffer is empty")
	}

	params := openai.AudioTranscriptionNewParams{
		Model: w.model,
		File:  openai.File(bytes.NewReader(audio), "voice.ogg", "audio/ogg"),
	}
	if w.language != "" {
		params.Language = openai.String(w.language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
