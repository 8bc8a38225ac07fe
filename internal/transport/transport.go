// Package transport defines the interface for pluggable trigger sources.
//
// In production the function is driven by the AWS Lambda runtime; for local
// development the same handler is served over plain HTTP. Both deliver API
// Gateway proxy events, so the handler is unaware of which one is active.
package transport

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// Handler processes one trigger event and returns the response envelope.
type Handler func(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Transport is the interface that every trigger source must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "lambda", "http").
	Name() string

	// Listen starts accepting events and passes them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
