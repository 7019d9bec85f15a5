package gen

// Tracer receives progress messages from running pipelines
type Tracer func(format string, args ...any)

var tracer Tracer

// SetTracer installs t as the progress tracer. nil disables tracing.
func SetTracer(t Tracer) {
	tracer = t
}

// DebugProgress reports generation progress to the installed tracer
func DebugProgress(format string, args ...any) {
	if tracer != nil {
		tracer(format, args...)
	}
}
