package pipeline

// Sink receives progress events from a run. Implementations must tolerate
// being called from a goroutine other than the one that built them and
// should return quickly; the run loop blocks on every call.
type Sink interface {
	// Status reports a human-readable status message.
	Status(message string)
	// Progress reports the ordinal of the segment just finished.
	Progress(current int)
	// MaxProgress reports the total segment count, once, before the loop.
	MaxProgress(total int)
	// Error reports the single fatal error that ended the run.
	Error(message string)
	// Complete reports the output path after a run finishes normally.
	Complete(outputPath string)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Status(string)   {}
func (NopSink) Progress(int)    {}
func (NopSink) MaxProgress(int) {}
func (NopSink) Error(string)    {}
func (NopSink) Complete(string) {}

// SinkFuncs adapts plain functions to the Sink interface; nil fields are
// ignored.
type SinkFuncs struct {
	OnStatus      func(string)
	OnProgress    func(int)
	OnMaxProgress func(int)
	OnError       func(string)
	OnComplete    func(string)
}

func (s SinkFuncs) Status(m string) {
	if s.OnStatus != nil {
		s.OnStatus(m)
	}
}

func (s SinkFuncs) Progress(n int) {
	if s.OnProgress != nil {
		s.OnProgress(n)
	}
}

func (s SinkFuncs) MaxProgress(n int) {
	if s.OnMaxProgress != nil {
		s.OnMaxProgress(n)
	}
}

func (s SinkFuncs) Error(m string) {
	if s.OnError != nil {
		s.OnError(m)
	}
}

func (s SinkFuncs) Complete(p string) {
	if s.OnComplete != nil {
		s.OnComplete(p)
	}
}
