package shell

import (
	"strings"
	"sync"
)

// Call records a single command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line renders the call as "name arg1 arg2".
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response holds the result and error for a mocked command.
type Response struct {
	Result Result
	Err    error
}

// MockCommander is a test double for Commander that records calls and
// returns configured responses.
type MockCommander struct {
	mu sync.Mutex
	// Calls records all commands that were executed
	Calls []Call
	// Responses maps command lines to their outputs/errors
	Responses map[string]Response
	// Hook, when set, runs for every call before the response lookup.
	Hook func(Call)
}

// NewMockCommander creates a mock commander with no configured responses.
func NewMockCommander() *MockCommander {
	return &MockCommander{Responses: make(map[string]Response)}
}

// Run implements Commander.
func (m *MockCommander) Run(dir, name string, args ...string) (Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	hook := m.Hook
	resp, ok := m.Responses[call.Line()]
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if ok {
		return resp.Result, resp.Err
	}
	// Default: command succeeds with empty output
	return Result{}, nil
}

// SetResponse configures the response for a command line.
func (m *MockCommander) SetResponse(line string, res Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[line] = Response{Result: res, Err: err}
}

// CallsTo returns the recorded calls whose program name is name.
func (m *MockCommander) CallsTo(name string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
