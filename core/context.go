package core

import "context"

// Context keys for assessment options
type contextKey string

const (
	suppressProgressKey contextKey = "suppressProgress"
	runIDKey            contextKey = "runID"
)

// withSuppressProgress disables the progress bar for assessments run under ctx.
func withSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether progress display is disabled in ctx.
func shouldSuppressProgress(ctx context.Context) bool {
	val := ctx.Value(suppressProgressKey)
	if val == nil {
		return false // default: show progress when requested
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withRunID tags ctx with the identifier used to correlate log lines of one command run.
func withRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// getRunID returns the run identifier from ctx, if any.
func getRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}
