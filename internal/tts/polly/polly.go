// Package polly implements the TTS Synthesizer using Amazon Polly.
//
// One SDK client is created per process and reused for every request.
// Polly returns the encoded audio as a stream; it is read fully into
// memory before returning, since the response envelope carries the whole
// clip as a single base64 string.
package polly

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/nadzzz/speechfn/internal/config"
	"github.com/nadzzz/speechfn/internal/tts"
)

const defaultContentType = "audio/mpeg"

// SpeechAPI is the subset of the Polly client used here.
type SpeechAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Synthesizer implements tts.Synthesizer on top of Polly.
type Synthesizer struct {
	client       SpeechAPI
	voice        string
	outputFormat string
	engine       string
}

// New loads the default AWS configuration and creates a Polly synthesizer.
func New(ctx context.Context, cfg config.PollyConfig) (*Synthesizer, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewWithClient(polly.NewFromConfig(awsCfg), cfg), nil
}

// NewWithClient creates a synthesizer around an existing Polly client.
func NewWithClient(client SpeechAPI, cfg config.PollyConfig) *Synthesizer {
	voice := cfg.Voice
	if voice == "" {
		voice = string(types.VoiceIdJoanna)
	}
	format := cfg.OutputFormat
	if format == "" {
		format = tts.FormatMP3
	}
	return &Synthesizer{
		client:       client,
		voice:        voice,
		outputFormat: format,
		engine:       cfg.Engine,
	}
}

// Name returns the backend identifier.
func (s *Synthesizer) Name() string { return "polly" }

// Synthesize calls Polly SynthesizeSpeech and returns the buffered audio stream.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}

	voice := opts.Voice
	if voice == "" {
		voice = s.voice
	}
	format := opts.OutputFormat
	if format == "" {
		format = s.outputFormat
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		OutputFormat: types.OutputFormat(format),
		VoiceId:      types.VoiceId(voice),
	}
	if s.engine != "" {
		input.Engine = types.Engine(s.engine)
	}

	slog.Debug("polly synthesize", "text_length", len(text), "voice", voice, "format", format)

	out, err := s.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("polly synthesize: %w", err)
	}
	if out.AudioStream == nil {
		return nil, fmt.Errorf("polly synthesize: no audio stream returned")
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("reading polly audio stream: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	slog.Debug("polly synthesize complete", "audio_bytes", len(audio))
	return &tts.SynthesizeResult{
		Audio:       audio,
		ContentType: contentType,
	}, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Synthesizer) Close() error { return nil }
