package upload

// Observer receives upload progress. Implementations render it (terminal UI,
// plain log lines); the pipeline itself never prints.
type Observer interface {
	// Progress reports the current stage and completion percentage (0-100).
	Progress(stage string, percent int)
}

// ObserverFunc adapts a plain function to the [Observer] interface.
type ObserverFunc func(stage string, percent int)

// Progress implements [Observer].
func (f ObserverFunc) Progress(stage string, percent int) { f(stage, percent) }

// NopObserver discards progress events.
type NopObserver struct{}

// Progress implements [Observer].
func (NopObserver) Progress(string, int) {}
