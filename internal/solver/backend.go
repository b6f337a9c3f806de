package solver

import "context"

// Backend is the solver invocation API of §6: invoke(inputDocument,
// timeLimitSeconds) -> outputDocument. Implementations may shell out to an
// external MIP/CP solver process, call a remote service, or (as with
// GreedyBackend) compute the assignment set in-process.
type Backend interface {
	Invoke(ctx context.Context, input InputDocument) (OutputDocument, error)
}

// BackendFunc adapts a plain function to the Backend interface.
type BackendFunc func(ctx context.Context, input InputDocument) (OutputDocument, error)

// Invoke calls f.
func (f BackendFunc) Invoke(ctx context.Context, input InputDocument) (OutputDocument, error) {
	return f(ctx, input)
}
