package message

import (
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(events.APIGatewayProxyRequest{Body: `{"text":" Hello world "}`})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", req.Text)
}

func TestParseRequest_NotAString(t *testing.T) {
	cases := map[string]string{
		"null body":       `null`,
		"null text":       `{"text": null}`,
		"numeric text":    `{"text": 7}`,
		"whitespace body": "  \n ",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequest(events.APIGatewayProxyRequest{Body: body})
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrTextRequired)
		})
	}
}

func TestParseRequest_MissingText(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"text": "  "}`, `{"voice": "Amy"}`} {
		_, err := ParseRequest(events.APIGatewayProxyRequest{Body: body})
		assert.ErrorIs(t, err, ErrTextRequired, body)
	}
}

func TestParseRequest_InvalidBase64(t *testing.T) {
	_, err := ParseRequest(events.APIGatewayProxyRequest{Body: "%%%", IsBase64Encoded: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTextRequired)
}

func TestAudioResponse(t *testing.T) {
	audio := []byte{0, 1, 2, 250, 251, 252}
	resp := AudioResponse(audio)

	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, map[string]string{
		"Content-Type":                "audio/mpeg",
		"Access-Control-Allow-Origin": "*",
	}, resp.Headers)
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), resp.Body)
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse(400, MsgTextRequired)

	assert.Equal(t, 400, resp.StatusCode)
	assert.False(t, resp.IsBase64Encoded)
	assert.Equal(t, map[string]string{"Access-Control-Allow-Origin": "*"}, resp.Headers)
	assert.Equal(t, `{"error": "Text is required"}`, resp.Body)
}

func TestErrorResponse_InternalError(t *testing.T) {
	resp := ErrorResponse(500, MsgInternalError)
	assert.Equal(t, `{"error": "Internal server error"}`, resp.Body)
}

func TestCORSHeaders_NotShared(t *testing.T) {
	h := CORSHeaders()
	h["Content-Type"] = "audio/mpeg"
	assert.NotContains(t, CORSHeaders(), "Content-Type")
}
