package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/application/common"
)

// MockMediator is a test double for the Mediator interface. It records every request and
// answers from canned responses keyed by request type, or from a custom send function.
type MockMediator struct {
	mu        sync.Mutex
	sendFunc  func(ctx context.Context, request common.Request) (common.Response, error)
	responses map[reflect.Type]common.Response
	requests  []common.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{responses: make(map[reflect.Type]common.Response)}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	sendFunc := m.sendFunc
	response, ok := m.responses[reflect.TypeOf(request)]
	m.mu.Unlock()

	if sendFunc != nil {
		return sendFunc(ctx, request)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return response, nil
}

// Respond makes every request of the same type as request answer with response
func (m *MockMediator) Respond(request common.Request, response common.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[reflect.TypeOf(request)] = response
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Requests returns every request sent so far
func (m *MockMediator) Requests() []common.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Request{}, m.requests...)
}

// LastRequest returns the most recent request, or nil
func (m *MockMediator) LastRequest() common.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface (no-op for tests)
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

var _ common.Mediator = (*MockMediator)(nil)
