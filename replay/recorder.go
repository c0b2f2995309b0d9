package replay

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bearpark/bear-slice/arcade"
)

// Recorder forwards engine calls and keeps them as frames
// It must wrap the engine before its first input or tick
type Recorder struct {
	mu     sync.Mutex
	engine *arcade.Engine
	replay Replay
}

// NewRecorder starts recording e
func NewRecorder(e *arcade.Engine) *Recorder {
	t := e.Tuning()
	return &Recorder{
		engine: e,
		replay: Replay{Header: Header{
			ID:        uuid.NewString(),
			RoundID:   e.Snapshot().Round.ID,
			Seed:      e.Seed(),
			Tuning:    t.Values(),
			Variants:  append(t.Variants[:0:0], t.Variants...),
			Digest:    t.Digest(),
			CreatedAt: time.Now().UTC(),
		}},
	}
}

// Engine returns the wrapped engine
func (r *Recorder) Engine() *arcade.Engine { return r.engine }

func (r *Recorder) add(f Frame) {
	r.mu.Lock()
	r.replay.Frames = append(r.replay.Frames, f)
	r.mu.Unlock()
}

// HandleInput records and forwards a pointer event
func (r *Recorder) HandleInput(in arcade.InputEvent) {
	r.add(Frame{Kind: FrameInput, Input: in})
	r.engine.HandleInput(in)
}

// Advance records and forwards a time step
func (r *Recorder) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	r.add(Frame{Kind: FrameTick, DT: dt})
	r.engine.Advance(dt)
}

// Pause records a successful pause
func (r *Recorder) Pause() bool {
	if !r.engine.Pause() {
		return false
	}
	r.add(Frame{Kind: FramePause})
	return true
}

// Resume records a successful resume
func (r *Recorder) Resume() bool {
	if !r.engine.Resume() {
		return false
	}
	r.add(Frame{Kind: FrameResume})
	return true
}

// Restart records and forwards a restart
func (r *Recorder) Restart() error {
	if err := r.engine.Restart(); err != nil {
		return err
	}
	r.add(Frame{Kind: FrameRestart})
	return nil
}

// Len returns the number of recorded frames
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.replay.Frames)
}

// Replay returns a copy of everything recorded so far
func (r *Recorder) Replay() *Replay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.replay
	out.Frames = append([]Frame(nil), r.replay.Frames...)
	return &out
}

// Save writes the recording to path
func (r *Recorder) Save(path string) error {
	return Save(path, r.Replay())
}
