// Package message defines the request and response shapes exchanged with the
// hosting platform.
//
// The trigger event and the response envelope are the API Gateway proxy
// types from aws-lambda-go. The local HTTP transport builds the same types,
// so the speech handler never sees which transport delivered a request.
package message

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	// ContentTypeMPEG is the MIME type of a successful response body.
	ContentTypeMPEG = "audio/mpeg"

	// MsgTextRequired is returned to callers that send no usable text.
	MsgTextRequired = "Text is required"

	// MsgInternalError is the fixed message for every unexpected failure.
	// It never carries details of the underlying error.
	MsgInternalError = "Internal server error"
)

// ErrTextRequired marks a request whose text is missing or blank.
var ErrTextRequired = errors.New("text is required")

// SpeechRequest is the JSON object carried in the event body.
type SpeechRequest struct {
	// Text is the input to synthesize. Surrounding whitespace is ignored.
	Text string `json:"text" example:"Hello world"`
}

// ErrorBody is the JSON body of every non-200 response.
type ErrorBody struct {
	Error string `json:"error" example:"Text is required"`
}

// ParseRequest extracts the speech request from a trigger event.
//
// An absent body is treated as "{}". A body flagged as base64-encoded is
// decoded first. The body must be a JSON object; when it carries "text" the
// value must be a string. The returned text is already trimmed; if it is
// empty the error is ErrTextRequired. Any other error means the body could
// not be read.
func ParseRequest(evt events.APIGatewayProxyRequest) (SpeechRequest, error) {
	raw := evt.Body
	if evt.IsBase64Encoded && raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return SpeechRequest{}, fmt.Errorf("decoding base64 body: %w", err)
		}
		raw = string(decoded)
	}
	if raw == "" {
		raw = "{}"
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return SpeechRequest{}, fmt.Errorf("parsing body: %w", err)
	}
	if fields == nil {
		return SpeechRequest{}, errors.New("parsing body: not a JSON object")
	}

	var req SpeechRequest
	if value, ok := fields["text"]; ok {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return SpeechRequest{}, errors.New("parsing body: text is null")
		}
		if err := json.Unmarshal(value, &req.Text); err != nil {
			return SpeechRequest{}, fmt.Errorf("parsing text: %w", err)
		}
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return req, ErrTextRequired
	}
	return req, nil
}

// CORSHeaders returns the headers present on every response.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
	}
}

// AudioResponse wraps synthesized audio in a 200 envelope.
func AudioResponse(audio []byte) events.APIGatewayProxyResponse {
	headers := CORSHeaders()
	headers["Content-Type"] = ContentTypeMPEG
	return events.APIGatewayProxyResponse{
		StatusCode:      200,
		Headers:         headers,
		Body:            base64.StdEncoding.EncodeToString(audio),
		IsBase64Encoded: true,
	}
}

// ErrorResponse builds an error envelope with a {"error": msg} body.
// The body keeps a space after the colon, matching the documented wire form.
func ErrorResponse(status int, msg string) events.APIGatewayProxyResponse {
	// Marshalling a string cannot fail.
	quoted, _ := json.Marshal(msg)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    CORSHeaders(),
		Body:       `{"error": ` + string(quoted) + `}`,
	}
}
