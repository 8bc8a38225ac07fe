// Package speech implements the speech request handler.
//
// The handler turns one trigger event into one response envelope:
// parse the body, validate the text, synthesize it, and base64-encode the
// audio. Every outcome is expressed in the envelope. A failure on the
// internal path is logged with its cause and reported to the caller as a
// generic 500, so upstream and local errors look the same from outside.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/nadzzz/speechfn/internal/message"
	"github.com/nadzzz/speechfn/internal/tts"
)

// Handler processes speech requests against a shared synthesizer.
type Handler struct {
	synthesizer tts.Synthesizer
	opts        tts.SynthesizeOpts
}

// New creates a Handler. The synthesizer is shared by all invocations and
// must be safe for concurrent use.
func New(synthesizer tts.Synthesizer, opts tts.SynthesizeOpts) *Handler {
	return &Handler{
		synthesizer: synthesizer,
		opts:        opts,
	}
}

// Handle processes a single trigger event. The returned error is always nil;
// it exists so Handle satisfies transport.Handler and the Lambda runtime's
// handler signature.
func (h *Handler) Handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	logger := slog.With("request_id", evt.RequestContext.RequestID, "backend", h.synthesizer.Name())

	req, err := message.ParseRequest(evt)
	if errors.Is(err, message.ErrTextRequired) {
		logger.Warn("rejected request without text")
		return message.ErrorResponse(http.StatusBadRequest, message.MsgTextRequired), nil
	}
	if err != nil {
		logger.Error("invalid request body", "error", err)
		return message.ErrorResponse(http.StatusInternalServerError, message.MsgInternalError), nil
	}

	result, err := h.synthesizer.Synthesize(ctx, req.Text, h.opts)
	if err != nil {
		logger.Error("speech synthesis failed", "error", err, "text_length", len(req.Text))
		return message.ErrorResponse(http.StatusInternalServerError, message.MsgInternalError), nil
	}

	logger.Info("speech synthesized",
		"text_length", len(req.Text),
		"audio_bytes", len(result.Audio),
		"duration", time.Since(start))
	return message.AudioResponse(result.Audio), nil
}
