package runner

import "sync"

// Call records one invocation seen by MockRunner.
type Call struct {
	Dir         string
	Name        string
	Args        []string
	Interactive bool
}

// CommandLine renders the call the same way responses are keyed.
func (c Call) CommandLine() string {
	return CommandLine(c.Name, c.Args...)
}

type response struct {
	output string
	err    error
}

// MockRunner is a CommandRunner for tests. Responses are keyed by the full
// command line; unknown commands succeed with empty output.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
}

// NewMockRunner returns an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{responses: make(map[string]response)}
}

// On sets the output and error returned for a command line such as
// "git config --local --get user.name".
func (m *MockRunner) On(cmdline, output string, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmdline] = response{output: output, err: err}
	return m
}

// Calls returns a copy of the recorded calls.
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CommandLines returns the recorded calls rendered as command lines.
func (m *MockRunner) CommandLines() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.CommandLine()
	}
	return out
}

// Run implements CommandRunner.
func (m *MockRunner) Run(dir, name string, args ...string) (string, error) {
	return m.record(Call{Dir: dir, Name: name, Args: args})
}

// RunInteractive implements CommandRunner.
func (m *MockRunner) RunInteractive(dir, name string, args ...string) error {
	_, err := m.record(Call{Dir: dir, Name: name, Args: args, Interactive: true})
	return err
}

func (m *MockRunner) record(c Call) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	r := m.responses[c.CommandLine()]
	return r.output, r.err
}
