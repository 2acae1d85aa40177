package mediator

import "context"

// Request is a command or query value; its dynamic type selects the handler
type Request any

// Response is whatever the handler returns for its request type
type Response any

// RequestHandler serves one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps every dispatch; it decides whether and how to call next
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
