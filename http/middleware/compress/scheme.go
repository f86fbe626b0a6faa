package compress

import (
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type Level int

const (
	DefaultCompression Level = 0
	BestCompression    Level = 1
	BestSpeed          Level = 2
)

// Compressor is a resettable encoder for one response.
type Compressor interface {
	Write(p []byte) (int, error)
	Flush() error
	Reset(w io.Writer)
	Close() error
}

// Scheme is a pool of compressors for a content encoding.
type Scheme interface {
	// Name is the value for the Content-Encoding header.
	Name() string
	Acquire() Compressor
	Release(c Compressor)
}

type pooledScheme struct {
	name string
	pool sync.Pool
}

func newPooledScheme(name string, create func() Compressor) *pooledScheme {
	s := &pooledScheme{
		name: name,
	}

	s.pool.New = func() any {
		return create()
	}

	return s
}

func (s *pooledScheme) Name() string {
	return s.name
}

func (s *pooledScheme) Acquire() Compressor {
	c, ok := s.pool.Get().(Compressor)
	if !ok || c == nil {
		return nil
	}

	c.Reset(io.Discard)

	return c
}

func (s *pooledScheme) Release(c Compressor) {
	c.Reset(io.Discard)
	s.pool.Put(c)
}

// NewGzip returns a gzip scheme.
func NewGzip(level Level) Scheme {
	gzipLevel := gzip.DefaultCompression
	switch level {
	case BestCompression:
		gzipLevel = gzip.BestCompression
	case BestSpeed:
		gzipLevel = gzip.BestSpeed
	}

	return newPooledScheme("gzip", func() Compressor {
		w, err := gzip.NewWriterLevel(io.Discard, gzipLevel)
		if err != nil {
			return nil
		}
		return w
	})
}

// NewBrotli returns a brotli scheme.
func NewBrotli(level Level) Scheme {
	brotliLevel := brotli.DefaultCompression
	switch level {
	case BestCompression:
		brotliLevel = brotli.BestCompression
	case BestSpeed:
		brotliLevel = brotli.BestSpeed
	}

	return newPooledScheme("br", func() Compressor {
		return brotli.NewWriterLevel(io.Discard, brotliLevel)
	})
}

// NewZstd returns a zstd scheme.
func NewZstd(level Level) Scheme {
	zstdLevel := zstd.SpeedDefault
	switch level {
	case BestCompression:
		zstdLevel = zstd.SpeedBestCompression
	case BestSpeed:
		zstdLevel = zstd.SpeedFastest
	}

	return newPooledScheme("zstd", func() Compressor {
		w, err := zstd.NewWriter(io.Discard, zstd.WithZeroFrames(true), zstd.WithEncoderLevel(zstdLevel))
		if err != nil {
			return nil
		}
		return w
	})
}

// accepts returns the encodings of an Accept-Encoding header value, without
// their quality values. Encodings with q=0 are left out.
func accepts(header string) map[string]struct{} {
	encodings := map[string]struct{}{}

	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) == 0 {
			continue
		}

		params = strings.ReplaceAll(params, " ", "")
		if params == "q=0" || params == "q=0.0" || params == "q=0.00" || params == "q=0.000" {
			continue
		}

		encodings[name] = struct{}{}
	}

	return encodings
}
