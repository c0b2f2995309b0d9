// Package replay records engine sessions and plays them back deterministically.
//
// A replay file is the 4-byte magic "BSRP", a version byte, then an LZ4 frame
// holding the msgpack-encoded Replay.
package replay

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/config"
)

const (
	Magic   = "BSRP"
	Version = 1
)

var (
	ErrBadMagic       = errors.New("replay: not a replay file")
	ErrBadVersion     = errors.New("replay: unsupported version")
	ErrDigestMismatch = errors.New("replay: tuning digest mismatch")
)

// FrameKind tags a recorded engine call
type FrameKind uint8

const (
	FrameTick FrameKind = iota + 1
	FrameInput
	FramePause
	FrameResume
	FrameRestart
)

func (k FrameKind) String() string {
	switch k {
	case FrameTick:
		return "tick"
	case FrameInput:
		return "input"
	case FramePause:
		return "pause"
	case FrameResume:
		return "resume"
	case FrameRestart:
		return "restart"
	}
	return "unknown"
}

// Frame is one recorded engine call
// DT is set for ticks, Input for pointer events
type Frame struct {
	Kind  FrameKind         `msgpack:"k"`
	DT    time.Duration     `msgpack:"dt,omitempty"`
	Input arcade.InputEvent `msgpack:"in,omitempty"`
}

// Header identifies the session and everything needed to rebuild its engine
type Header struct {
	ID        string             `msgpack:"id"`
	RoundID   string             `msgpack:"round_id"`
	Seed      uint64             `msgpack:"seed"`
	Tuning    map[string]float64 `msgpack:"tuning"`
	Variants  []config.Variant   `msgpack:"variants"`
	Digest    string             `msgpack:"digest"`
	CreatedAt time.Time          `msgpack:"created_at"`
}

// Replay is a complete recorded session
type Replay struct {
	Header Header  `msgpack:"header"`
	Frames []Frame `msgpack:"frames"`
}

// Write encodes rp to w
func Write(w io.Writer, rp *Replay) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return errors.Wrap(err, "write magic")
	}
	if _, err := w.Write([]byte{Version}); err != nil {
		return errors.Wrap(err, "write version")
	}
	zw := lz4.NewWriter(w)
	if err := msgpack.NewEncoder(zw).Encode(rp); err != nil {
		return errors.Wrap(err, "encode replay")
	}
	return errors.Wrap(zw.Close(), "flush lz4")
}

// Read decodes a replay from r
func Read(r io.Reader) (*Replay, error) {
	var head [len(Magic) + 1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, errors.Wrap(err, "read header")
	}
	if string(head[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}
	if v := head[len(Magic)]; v != Version {
		return nil, errors.Wrapf(ErrBadVersion, "version %d", v)
	}

	rp := &Replay{}
	if err := msgpack.NewDecoder(lz4.NewReader(r)).Decode(rp); err != nil {
		return nil, errors.Wrap(err, "decode replay")
	}
	return rp, nil
}

// Save writes rp to path atomically
func Save(path string, rp *Replay) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create replay dir")
	}
	tmp, err := os.CreateTemp(dir, ".replay-*")
	if err != nil {
		return errors.Wrap(err, "create temp replay")
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, rp); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "flush replay")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close replay")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "rename replay")
}

// Load reads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open replay")
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}
