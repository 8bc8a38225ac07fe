package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/speechfn/internal/tts"
)

// --- Mock types ---

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Name() string { return "mock" }

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	args := m.Called(ctx, text, opts)
	if res, ok := args.Get(0).(*tts.SynthesizeResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSynthesizer) Close() error { return nil }

func event(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{Body: body}
}

// --- Tests ---

func TestHandle_Success(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x44, 0x00, 0x01, 0x02}
	synth := new(MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "Hello world", tts.SynthesizeOpts{}).
		Return(&tts.SynthesizeResult{Audio: audio, ContentType: "audio/mpeg"}, nil).Once()

	h := New(synth, tts.SynthesizeOpts{})
	resp, err := h.Handle(context.Background(), event(`{"text": "Hello world"}`))
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, "audio/mpeg", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	decoded, err := base64.StdEncoding.DecodeString(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, audio, decoded)

	synth.AssertExpectations(t)
}

func TestHandle_TrimsText(t *testing.T) {
	synth := new(MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "padded", mock.Anything).
		Return(&tts.SynthesizeResult{Audio: []byte("x")}, nil).Once()

	h := New(synth, tts.SynthesizeOpts{})
	resp, err := h.Handle(context.Background(), event(`{"text": "  padded \n"}`))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	synth.AssertExpectations(t)
}

func TestHandle_PassesConfiguredOpts(t *testing.T) {
	opts := tts.SynthesizeOpts{Voice: "Matthew", OutputFormat: tts.FormatMP3}
	synth := new(MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "hi", opts).
		Return(&tts.SynthesizeResult{Audio: []byte("x")}, nil).Once()

	h := New(synth, opts)
	_, err := h.Handle(context.Background(), event(`{"text":"hi"}`))
	require.NoError(t, err)

	synth.AssertExpectations(t)
}

func TestHandle_TextRequired(t *testing.T) {
	cases := map[string]string{
		"whitespace only": `{"text": "   "}`,
		"empty string":    `{"text": ""}`,
		"missing field":   `{}`,
		"absent body":     ``,
		"other fields":    `{"voice": "Joanna"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			synth := new(MockSynthesizer)
			h := New(synth, tts.SynthesizeOpts{})

			resp, err := h.Handle(context.Background(), event(body))
			require.NoError(t, err)

			assert.Equal(t, 400, resp.StatusCode)
			assert.Equal(t, `{"error": "Text is required"}`, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.NotContains(t, resp.Headers, "Content-Type")
			assert.False(t, resp.IsBase64Encoded)

			synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_SynthesisError(t *testing.T) {
	synth := new(MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "Hello world", mock.Anything).
		Return(nil, errors.New("ThrottlingException: rate exceeded")).Once()

	h := New(synth, tts.SynthesizeOpts{})
	resp, err := h.Handle(context.Background(), event(`{"text": "Hello world"}`))
	require.NoError(t, err)

	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, `{"error": "Internal server error"}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.False(t, resp.IsBase64Encoded)
	assert.NotContains(t, resp.Body, "Throttling")

	synth.AssertExpectations(t)
}

func TestHandle_MalformedBody(t *testing.T) {
	cases := map[string]string{
		"invalid json":      `{"text": `,
		"text not a string": `{"text": 42}`,
		"array body":        `["Hello"]`,
		"null text":         `{"text": null}`,
		"null body":         `null`,
		"whitespace body":   `   `,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			synth := new(MockSynthesizer)
			h := New(synth, tts.SynthesizeOpts{})

			resp, err := h.Handle(context.Background(), event(body))
			require.NoError(t, err)

			assert.Equal(t, 500, resp.StatusCode)
			assert.Equal(t, `{"error": "Internal server error"}`, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

			synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_Base64EncodedRequest(t *testing.T) {
	synth := new(MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "encoded", mock.Anything).
		Return(&tts.SynthesizeResult{Audio: []byte("mp3")}, nil).Once()

	h := New(synth, tts.SynthesizeOpts{})
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"text":"encoded"}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	synth.AssertExpectations(t)
}
