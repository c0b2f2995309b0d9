package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/event"
)

type counter struct{ n int }

func (c *counter) Emit(event.GameEvent) { c.n++ }

// session drives a recorder through a scripted round of sweeping swipes
func session(t *testing.T, seed uint64) (*Recorder, *counter) {
	t.Helper()
	c := &counter{}
	e, err := arcade.New(config.Default(), arcade.Options{Seed: seed, Emitter: c})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })

	r := NewRecorder(e)
	var at time.Duration
	for i := 0; i < 900; i++ {
		r.Advance(16 * time.Millisecond)
		at += 16 * time.Millisecond
		y := float64(150 + (i*37)%450)
		switch i % 6 {
		case 0:
			r.HandleInput(arcade.InputEvent{Type: arcade.PointerDown, X: 0, Y: y, At: at})
		case 1, 2, 3:
			r.HandleInput(arcade.InputEvent{Type: arcade.PointerMove, X: float64(i%6) * 420, Y: y, At: at})
		case 4:
			r.HandleInput(arcade.InputEvent{Type: arcade.PointerUp, At: at})
		}
		if i == 300 {
			r.Pause()
			r.Advance(time.Second)
			r.Resume()
		}
	}
	return r, c
}

func TestRoundTripAndDeterministicPlayback(t *testing.T) {
	r, c := session(t, 7)
	want := r.Engine().Snapshot()

	var buf bytes.Buffer
	if err := Write(&buf, r.Replay()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte(Magic)) {
		t.Fatal("missing magic")
	}
	rp, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rp.Frames) != r.Len() || rp.Header.Seed != 7 || rp.Header.Digest != config.Default().Digest() {
		t.Fatalf("header %+v with %d frames", rp.Header, len(rp.Frames))
	}

	res, err := Play(rp, Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.Score != want.Round.Score || res.Lives != want.Round.Lives ||
		res.Slices != want.Round.Slices || res.Terminal != want.Round.Terminal {
		t.Errorf("playback %+v, recorded score %d lives %d slices %d terminal %v",
			res, want.Round.Score, want.Round.Lives, want.Round.Slices, want.Round.Terminal)
	}
	if res.Events != c.n {
		t.Errorf("playback emitted %d notifications, recording %d", res.Events, c.n)
	}
}

func TestPlayRejectsTamperedTuning(t *testing.T) {
	r, _ := session(t, 3)
	rp := r.Replay()
	rp.Header.Tuning["lives"] = 9
	if _, err := Play(rp, Options{}); !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Play = %v, want ErrDigestMismatch", err)
	}
}

func TestReadRejectsForeignData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrBadMagic},
		{"short", []byte("BS"), ErrBadMagic},
		{"wrong magic", []byte("PNG\x00\x01rest"), ErrBadMagic},
		{"future version", []byte("BSRP\x09"), ErrBadVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Read = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	r, _ := session(t, 11)
	path := filepath.Join(t.TempDir(), "runs", "a.bsrp")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rp, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rp.Header.ID != r.Replay().Header.ID {
		t.Errorf("header id %q", rp.Header.ID)
	}
	kinds := map[FrameKind]int{}
	for _, f := range rp.Frames {
		kinds[f.Kind]++
	}
	if kinds[FramePause] != 1 || kinds[FrameResume] != 1 || kinds[FrameTick] != 901 {
		t.Errorf("frame kinds = %v", kinds)
	}
}
