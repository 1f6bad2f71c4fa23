package reader

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// DefaultPartLimit caps the decompressed size of one container part.
const DefaultPartLimit int64 = 32 << 20

// ErrPartTooLarge reports a container part that decompresses past its limit.
var ErrPartTooLarge = errors.New("container part exceeds size limit")

func partLimitOrDefault(n int64) int64 {
	if n > 0 {
		return n
	}
	return DefaultPartLimit
}

// boundedReader yields at most limit+1 bytes and then fails, so a consumer
// reading to EOF sees ErrPartTooLarge instead of an unbounded stream.
type boundedReader struct {
	r    io.Reader
	left int64
	name string
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.left <= 0 {
		return 0, fmt.Errorf("%s: %w", b.name, ErrPartTooLarge)
	}
	if int64(len(p)) > b.left {
		p = p[:b.left]
	}
	n, err := b.r.Read(p)
	b.left -= int64(n)
	return n, err
}

// openPart opens f with its decompressed size capped at limit bytes.
func openPart(f *zip.File, limit int64) (io.ReadCloser, error) {
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrPartTooLarge)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{&boundedReader{r: rc, left: limit + 1, name: f.Name}, rc}, nil
}

// readPart returns the named part, or nil when the container has no such
// entry.
func readPart(zr *zip.Reader, name string, limit int64) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := openPart(f, limit)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return b, nil
	}
	return nil, nil
}
