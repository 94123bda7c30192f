package recorder

import (
	"encoding/gob"
	"errors"
	"io"
	"os"
)

// ErrClosed is returned by WriteFrame once the GobFile has been closed.
var ErrClosed = errors.New("recorder: write to closed GobFile")

// frameRecord is one gob-encoded record: a frame number and its agent
// snapshots, written as a length-prefixed stream by gob.Encoder.
type frameRecord struct {
	Frame  int
	Agents []AgentSnapshot
}

// GobFile is the reference Recorder: every WriteFrame call gob-encodes one
// frameRecord onto the end of an underlying file. It makes no format
// guarantees beyond "read back with gob.Decoder in the same order
// written" — callers needing a stable cross-version wire format should
// supply their own Recorder.
type GobFile struct {
	file   *os.File
	enc    *gob.Encoder
	closed bool
}

// NewGobFile creates (truncating) path and returns a GobFile ready for
// WriteFrame calls.
func NewGobFile(path string) (*GobFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &GobFile{file: f, enc: gob.NewEncoder(f)}, nil
}

// WriteFrame appends one frameRecord to the file.
func (g *GobFile) WriteFrame(frame int, agents []AgentSnapshot) error {
	if g.closed {
		return ErrClosed
	}

	return g.enc.Encode(frameRecord{Frame: frame, Agents: agents})
}

// Close flushes and closes the underlying file. Subsequent WriteFrame
// calls return ErrClosed.
func (g *GobFile) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	return g.file.Close()
}

var _ Recorder = (*GobFile)(nil)

// ReadGobFile reads every frameRecord written by a GobFile back, in write
// order. It is the reader half of the reference format, used by tests and
// by any replay tool built on top of GobFile.
func ReadGobFile(path string) (frames []int, snapshots [][]AgentSnapshot, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	for {
		var rec frameRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return frames, snapshots, err
		}
		frames = append(frames, rec.Frame)
		snapshots = append(snapshots, rec.Agents)
	}

	return frames, snapshots, nil
}
