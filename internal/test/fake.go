package test

import "context"

// Call records a single invocation dispatched through a FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// FakeRunner is a scriptable process.Runner, letting tests drive the
// orchestration pipeline without spawning real processes.
type FakeRunner struct {
	// Handler produces the response for a call. When nil every call succeeds
	// with empty output.
	Handler func(name string, args []string) (string, error)

	// Calls records every invocation in order.
	Calls []Call
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

func (f *FakeRunner) Run(_ context.Context, dir string, name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Name: name, Args: args})

	if f.Handler == nil {
		return "", nil
	}

	return f.Handler(name, args)
}
