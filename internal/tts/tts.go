// Package tts defines the interface for text-to-speech synthesis.
//
// The speech handler depends only on Synthesizer. The concrete backend
// (Amazon Polly by default, Google Cloud Text-to-Speech optionally) is
// created once per process and shared by every invocation.
package tts

import "context"

// Output formats understood by the backends.
const (
	FormatMP3 = "mp3"
)

// SynthesizeOpts controls synthesis behavior.
// Zero values fall back to the backend's configured defaults.
type SynthesizeOpts struct {
	// Voice overrides the configured voice (e.g., "Joanna").
	Voice string

	// OutputFormat overrides the configured audio format (e.g., "mp3").
	OutputFormat string
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Name returns the backend identifier (e.g., "polly", "google").
	Name() string

	// Synthesize generates audio for text and returns it fully buffered.
	Synthesize(ctx context.Context, text string, opts SynthesizeOpts) (*SynthesizeResult, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}

// SynthesizeResult holds the output of TTS synthesis.
type SynthesizeResult struct {
	// Audio is the encoded audio exactly as the backend produced it.
	Audio []byte

	// ContentType is the MIME type of the audio (e.g., "audio/mpeg").
	ContentType string
}
