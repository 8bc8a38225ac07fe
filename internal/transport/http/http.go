// Package http implements the local HTTP transport for speechfn.
//
// It serves the speech handler outside Lambda: each HTTP request is turned
// into an API Gateway proxy event and the returned envelope is written back
// as a real HTTP response, with the audio base64-decoded as API Gateway
// would do for a binary media type. Swagger UI documents the endpoint.
package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nadzzz/speechfn/docs" // registers the OpenAPI document
	"github.com/nadzzz/speechfn/internal/message"
	"github.com/nadzzz/speechfn/internal/transport"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Routes returns the HTTP handler serving the speech endpoint.
func (t *Transport) Routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /speech", func(w http.ResponseWriter, r *http.Request) {
		t.handleSpeech(w, r, handler)
	})
	mux.HandleFunc("OPTIONS /speech", handlePreflight)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.Routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleSpeech processes a POST /speech request.
//
// @Summary     Synthesize speech
// @Description Converts the given text to MP3 audio. By default the audio bytes are returned directly.
// @Description With envelope=true the API Gateway response envelope is returned as JSON, with the audio base64-encoded in its body.
// @Tags        speech
// @Accept      json
// @Produce     audio/mpeg
// @Produce     json
// @Param       request   body      message.SpeechRequest  true   "Text to synthesize"
// @Param       envelope  query     bool                   false  "Return the raw response envelope"
// @Success     200  {file}    binary             "MP3 audio"
// @Failure     400  {object}  message.ErrorBody  "Text is required"
// @Failure     413  {object}  message.ErrorBody  "Request body too large"
// @Failure     500  {object}  message.ErrorBody  "Internal server error"
// @Router      /speech [post]
func (t *Transport) handleSpeech(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeEnvelope(w, message.ErrorResponse(http.StatusRequestEntityTooLarge, "Request body too large"))
			return
		}
		slog.Error("reading request body", "error", err)
		writeEnvelope(w, message.ErrorResponse(http.StatusInternalServerError, message.MsgInternalError))
		return
	}

	resp, err := handler(r.Context(), toEvent(r, body))
	if err != nil {
		slog.Error("speech handler failed", "error", err)
		resp = message.ErrorResponse(http.StatusInternalServerError, message.MsgInternalError)
	}

	if r.URL.Query().Get("envelope") == "true" {
		for k, v := range message.CORSHeaders() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	writeEnvelope(w, resp)
}

// handlePreflight answers CORS preflight requests for /speech.
func handlePreflight(w http.ResponseWriter, r *http.Request) {
	for k, v := range message.CORSHeaders() {
		w.Header().Set(k, v)
	}
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusNoContent)
}

// toEvent builds the proxy event API Gateway would deliver for r.
func toEvent(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		headers[k] = strings.Join(v, ",")
	}
	query := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return events.APIGatewayProxyRequest{
		Resource:              "/speech",
		Path:                  r.URL.Path,
		HTTPMethod:            r.Method,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  r.Header.Get("X-Request-Id"),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
		},
	}
}

// writeEnvelope writes a proxy response the way API Gateway renders it.
func writeEnvelope(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			slog.Error("decoding response body", "error", err)
			writeEnvelope(w, message.ErrorResponse(http.StatusInternalServerError, message.MsgInternalError))
			return
		}
		body = decoded
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
