package executor

import "context"

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	// Env entries are appended to the parent environment as KEY=VALUE.
	Env []string
}

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Run(ctx context.Context, cmd Command) (string, error)
}
