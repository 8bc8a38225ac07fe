// Package lambda implements the AWS Lambda runtime transport.
//
// The function is fronted by API Gateway (REST or HTTP API v1 payloads), so
// each invocation carries an APIGatewayProxyRequest and must answer with an
// APIGatewayProxyResponse.
package lambda

import (
	"context"
	"log/slog"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/nadzzz/speechfn/internal/transport"
)

// Transport implements transport.Transport on the Lambda runtime API.
type Transport struct{}

// New creates a new Lambda transport.
func New() *Transport {
	return &Transport{}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "lambda" }

// Listen hands the handler to the Lambda runtime. The runtime loop exits the
// process itself when the environment shuts down, so Listen normally never
// returns.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	slog.Info("lambda transport starting")
	awslambda.StartWithOptions(handler, awslambda.WithContext(ctx))
	return nil
}

// Close is a no-op; the runtime owns the process lifecycle.
func (t *Transport) Close() error { return nil }
