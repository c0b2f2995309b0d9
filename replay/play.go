package replay

import (
	"log"

	"github.com/pkg/errors"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/event"
)

// Options configures playback
type Options struct {
	Emitter event.Emitter // nil discards notifications
}

// Result is the engine state after the last frame
type Result struct {
	Score    int
	Lives    int
	Slices   int
	Terminal bool
	Rounds   int
	Frames   int
	Events   int
}

// Play rebuilds the recorded engine and feeds every frame
func Play(rp *Replay, opts Options) (*Result, error) {
	if rp == nil {
		return nil, errors.New("replay: nil replay")
	}
	h := rp.Header
	t, err := config.FromMap(h.Tuning, h.Variants)
	if err != nil {
		return nil, errors.Wrap(err, "replay: rebuild tuning")
	}
	if got := t.Digest(); got != h.Digest {
		log.Printf("replay %s: digest %s, recorded %s", h.ID, got, h.Digest)
		return nil, ErrDigestMismatch
	}

	res := &Result{Rounds: 1}
	sink := opts.Emitter
	if sink == nil {
		sink = event.Discard
	}
	emitter := event.EmitterFunc(func(ev event.GameEvent) {
		res.Events++
		sink.Emit(ev)
	})

	e, err := arcade.New(t, arcade.Options{Seed: h.Seed, Emitter: emitter})
	if err != nil {
		return nil, errors.Wrap(err, "replay: build engine")
	}
	defer e.Close()

	for i, f := range rp.Frames {
		switch f.Kind {
		case FrameTick:
			e.Advance(f.DT)
		case FrameInput:
			e.HandleInput(f.Input)
		case FramePause:
			e.Pause()
		case FrameResume:
			e.Resume()
		case FrameRestart:
			if err := e.Restart(); err != nil {
				return nil, errors.Wrapf(err, "replay: frame %d", i)
			}
			res.Rounds++
		default:
			return nil, errors.Errorf("replay: frame %d has unknown kind %d", i, f.Kind)
		}
		res.Frames++
	}

	snap := e.Snapshot()
	res.Score = snap.Round.Score
	res.Lives = snap.Round.Lives
	res.Slices = snap.Round.Slices
	res.Terminal = snap.Round.Terminal
	return res, nil
}
