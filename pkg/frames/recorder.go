package frames

import (
	"sync"

	"github.com/sonemaro/pulsebar/pkg/progress"
)

// Recorder is a progress.Painter that keeps every frame it is given
type Recorder struct {
	mu     sync.Mutex
	frames []progress.Frame
	closed bool
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Paint(f progress.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.frames = append(r.frames, f)
}

func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Frames returns a copy of the recorded frames
func (r *Recorder) Frames() []progress.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]progress.Frame(nil), r.frames...)
}
