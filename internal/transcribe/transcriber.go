// Package transcribe wraps the external speech-to-text service behind a
// small interface so acquirers can be tested without audio uploads.
package transcribe

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperjump/debatable/internal/errs"
)

// Transcriber converts an audio file on disk into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperTranscriber transcribes audio via the OpenAI transcription API.
// Callers are responsible for enforcing the service's upload size limit
// before invoking it.
type WhisperTranscriber struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewWhisperTranscriber returns a transcriber using the given API key and
// model (e.g. "whisper-1").
func NewWhisperTranscriber(apiKey, model string, timeout time.Duration) *WhisperTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &WhisperTranscriber{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Transcribe uploads the file and returns the transcription text.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	resp, err := w.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Language: "en",
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", errs.Transientf(err, "transcription timed out after %s", w.timeout)
		}
		return "", errs.Transientf(err, "transcription request failed")
	}
	return resp.Text, nil
}

// MockTranscriber returns fixed text without network access. Used when the
// mocks flag is set and in tests.
type MockTranscriber struct {
	Text  string
	Err   error
	Calls int
}

// Transcribe implements Transcriber.
func (m *MockTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
