package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface.
// Responses are scripted per request type name (e.g. "*queries.GetProfitLossQuery").
type MockMediator struct {
	mu        sync.Mutex
	sendFunc  func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	responses map[string]mediator.Response
	callLog   []string
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[string]mediator.Response),
		callLog:   []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	name := fmt.Sprintf("%T", request)

	m.mu.Lock()
	m.callLog = append(m.callLog, name)
	fn := m.sendFunc
	resp, ok := m.responses[name]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %s", name)
	}
	return resp, nil
}

// Register is a no-op; handlers are scripted with SetResponse or SetSendFunc
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// Use is a no-op
func (m *MockMediator) Use(middleware mediator.Middleware) {}

// SetResponse scripts the response for a request type name
func (m *MockMediator) SetResponse(requestType string, resp mediator.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[requestType] = resp
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// CallLog returns the request type names sent so far
func (m *MockMediator) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.callLog))
	copy(out, m.callLog)
	return out
}
