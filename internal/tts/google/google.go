// Package google implements the TTS Synthesizer using Google Cloud Text-to-Speech.
//
// Only MP3 output is produced, so responses keep the audio/mpeg content type
// regardless of which backend is configured.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/nadzzz/speechfn/internal/config"
	"github.com/nadzzz/speechfn/internal/tts"
)

// SpeechAPI is the subset of the Text-to-Speech client used here.
type SpeechAPI interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// Synthesizer implements tts.Synthesizer on top of Google Cloud TTS.
type Synthesizer struct {
	client   SpeechAPI
	language string
	voice    string
}

// New creates the Text-to-Speech client and wraps it in a synthesizer.
func New(ctx context.Context, cfg config.GoogleConfig) (*Synthesizer, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating google tts client: %w", err)
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a synthesizer around an existing client.
func NewWithClient(client SpeechAPI, cfg config.GoogleConfig) *Synthesizer {
	return &Synthesizer{
		client:   client,
		language: cfg.Language,
		voice:    cfg.Voice,
	}
}

// Name returns the backend identifier.
func (s *Synthesizer) Name() string { return "google" }

// Synthesize requests MP3 audio for text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}
	if opts.OutputFormat != "" && opts.OutputFormat != tts.FormatMP3 {
		return nil, fmt.Errorf("google tts: unsupported output format %q", opts.OutputFormat)
	}

	voice := opts.Voice
	if voice == "" {
		voice = s.voice
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.language,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	started := time.Now()
	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("google synthesize: %w", err)
	}

	audio := resp.GetAudioContent()
	slog.Debug("google synthesize complete", "audio_bytes", len(audio), "took", time.Since(started))
	return &tts.SynthesizeResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

// Close releases the underlying gRPC connection.
func (s *Synthesizer) Close() error {
	return s.client.Close()
}
