package scene

import "context"

// ScriptRunner executes a script in the host environment and returns its
// captured output. The reference engine has no embedded interpreter; hosts
// that do inject their own implementation.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// ScriptRunnerFunc adapts a function to the ScriptRunner interface.
type ScriptRunnerFunc func(ctx context.Context, script string) (string, error)

func (f ScriptRunnerFunc) Run(ctx context.Context, script string) (string, error) {
	return f(ctx, script)
}
