// Package quadfile stores a snapshot of a quadtree model on disk so it can
// be rendered again later at any resolution.
//
// A file is a zstd stream holding a little-endian header followed by the
// leaves:
//
//	magic   [4]byte  "QUAD"
//	version uint32   1
//	width   uint32
//	height  uint32
//	count   uint32
//	count × { left, top, right, bottom uint32; r, g, b uint8 }
package quadfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/quads"
)

// Version is the format version written by this package.
const Version = 1

const (
	headerSize = 20
	leafSize   = 4*4 + 3
)

var magic = [4]byte{'Q', 'U', 'A', 'D'}

var (
	// ErrFormat is returned when the stream is not a quad file.
	ErrFormat = errors.New("quadfile: not a quad file")

	// ErrVersion is returned for files written by an unknown format version.
	ErrVersion = errors.New("quadfile: unsupported version")

	// ErrCorrupt is returned when the leaves do not fit the stored bounds.
	ErrCorrupt = errors.New("quadfile: corrupt leaf data")
)

// File is the decoded content of a quad file.
type File struct {
	Width, Height uint32
	Leaves        []quads.Leaf
}

// FromModel captures the current leaves of m.
func FromModel(m *quads.Model) File {
	b := m.Bounds()
	return File{Width: b.Width(), Height: b.Height(), Leaves: m.Snapshot()}
}

// Render composites the stored leaves at width × height.
// Non-positive sizes default to the stored source size.
func (f File) Render(width, height int, pad bool) *image.RGBA {
	return quads.Render(f.Leaves, int(f.Width), int(f.Height), width, height, pad)
}

// Write encodes f to w.
func Write(w io.Writer, f File) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("quadfile: create encoder: %w", err)
	}

	bw := bufio.NewWriter(enc)
	if err := writeRaw(bw, f); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("quadfile: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("quadfile: finish stream: %w", err)
	}
	return nil
}

func writeRaw(w io.Writer, f File) error {
	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	binary.LittleEndian.PutUint32(hdr[4:], Version)
	binary.LittleEndian.PutUint32(hdr[8:], f.Width)
	binary.LittleEndian.PutUint32(hdr[12:], f.Height)
	binary.LittleEndian.PutUint32(hdr[16:], uint32(len(f.Leaves)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("quadfile: write header: %w", err)
	}

	var rec [leafSize]byte
	for _, l := range f.Leaves {
		binary.LittleEndian.PutUint32(rec[0:], l.Rect.Left)
		binary.LittleEndian.PutUint32(rec[4:], l.Rect.Top)
		binary.LittleEndian.PutUint32(rec[8:], l.Rect.Right)
		binary.LittleEndian.PutUint32(rec[12:], l.Rect.Bottom)
		rec[16], rec[17], rec[18] = l.Color.R, l.Color.G, l.Color.B
		if _, err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("quadfile: write leaf: %w", err)
		}
	}
	return nil
}

// Read decodes a quad file from r.
//
// Every leaf must be non-empty and lie within the stored bounds; the leaves
// are not checked for overlap.
func Read(r io.Reader) (File, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return File{}, fmt.Errorf("quadfile: create decoder: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return File{}, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	if [4]byte(hdr[:4]) != magic {
		return File{}, ErrFormat
	}
	if v := binary.LittleEndian.Uint32(hdr[4:]); v != Version {
		return File{}, fmt.Errorf("%w: %d", ErrVersion, v)
	}

	f := File{
		Width:  binary.LittleEndian.Uint32(hdr[8:]),
		Height: binary.LittleEndian.Uint32(hdr[12:]),
	}
	count := binary.LittleEndian.Uint32(hdr[16:])
	bounds := quads.R(0, 0, f.Width, f.Height)
	if uint64(count) > bounds.Area() {
		return File{}, fmt.Errorf("%w: %d leaves in %dx%d", ErrCorrupt, count, f.Width, f.Height)
	}

	f.Leaves = make([]quads.Leaf, 0, min(count, 1<<16))
	var rec [leafSize]byte
	for i := range count {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return File{}, fmt.Errorf("%w: leaf %d: %w", ErrCorrupt, i, err)
		}
		l := quads.Leaf{
			Rect: quads.R(
				binary.LittleEndian.Uint32(rec[0:]),
				binary.LittleEndian.Uint32(rec[4:]),
				binary.LittleEndian.Uint32(rec[8:]),
				binary.LittleEndian.Uint32(rec[12:]),
			),
			Color: quads.Color{R: rec[16], G: rec[17], B: rec[18]},
		}
		if l.Rect.Empty() || !bounds.Contains(l.Rect) {
			return File{}, fmt.Errorf("%w: leaf %d %v outside %dx%d", ErrCorrupt, i, l.Rect, f.Width, f.Height)
		}
		f.Leaves = append(f.Leaves, l)
	}
	return f, nil
}

// Save writes f to the named file.
func Save(path string, f File) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("quadfile: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("quadfile: %w", cerr)
		}
	}()
	return Write(out, f)
}

// Load reads the named file.
func Load(path string) (File, error) {
	in, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("quadfile: %w", err)
	}
	defer in.Close()
	return Read(in)
}
