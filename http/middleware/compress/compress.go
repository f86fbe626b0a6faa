// Package compress is an echo middleware that compresses responses with
// gzip, brotli or zstd, depending on what the client accepts.
package compress

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/valyala/bytebufferpool"
)

// Config defines the config for compress middleware.
type Config struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper

	// Compression level. Optional. Default value 0.
	Level Level

	// Minimum length of a response before it is compressed. Optional.
	// Default value 0.
	MinLength int

	// Schemes is a list of enabled compressions. Optional. Default [gzip].
	Schemes []string

	// List of content types to compress. If empty, everything will be compressed.
	ContentTypes []string
}

// DefaultConfig is the default compress middleware config.
var DefaultConfig = Config{
	Skipper:      middleware.DefaultSkipper,
	Level:        DefaultCompression,
	MinLength:    0,
	Schemes:      []string{"gzip"},
	ContentTypes: []string{},
}

// ContentTypes is the list of content types the server compresses.
var ContentTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"image/svg+xml",
}

// preference is the order in which schemes are chosen if the client
// accepts more than one.
var preference = []string{"zstd", "br", "gzip"}

// New returns a middleware which compresses HTTP responses with gzip.
func New() echo.MiddlewareFunc {
	return NewWithConfig(DefaultConfig)
}

// NewWithConfig returns a compress middleware with config. Unknown schemes
// are ignored.
func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultConfig.Skipper
	}

	if config.MinLength < 0 {
		config.MinLength = DefaultConfig.MinLength
	}

	if len(config.Schemes) == 0 {
		config.Schemes = DefaultConfig.Schemes
	}

	contentTypes := slices.Clone(config.ContentTypes)

	schemes := []Scheme{}

	for _, name := range preference {
		if !slices.Contains(config.Schemes, name) {
			continue
		}

		switch name {
		case "zstd":
			schemes = append(schemes, NewZstd(config.Level))
		case "br":
			schemes = append(schemes, NewBrotli(config.Level))
		case "gzip":
			schemes = append(schemes, NewGzip(config.Level))
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			if len(schemes) == 0 {
				return next(c)
			}

			res := c.Response()
			res.Header().Add(echo.HeaderVary, echo.HeaderAcceptEncoding)

			accepted := accepts(c.Request().Header.Get(echo.HeaderAcceptEncoding))

			var scheme Scheme

			for _, s := range schemes {
				if _, ok := accepted[s.Name()]; ok {
					scheme = s
					break
				}
			}

			if scheme == nil {
				return next(c)
			}

			compressor := scheme.Acquire()
			if compressor == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to acquire compressor for %s", scheme.Name()))
			}

			rw := res.Writer
			compressor.Reset(rw)

			buffer := bytebufferpool.Get()

			crw := &compressResponseWriter{
				Compressor:     compressor,
				ResponseWriter: rw,
				minLength:      config.MinLength,
				buffer:         buffer,
				scheme:         scheme.Name(),
				contentTypes:   contentTypes,
			}

			defer func() {
				if crw.passThrough {
					// The body bypassed the encoder. Its trailer must not
					// reach the client.
					compressor.Reset(io.Discard)
					if crw.hasHeader {
						crw.writePlainHeader()
					}
				} else {
					if !crw.wroteBody {
						if res.Header().Get(echo.HeaderContentEncoding) == crw.scheme {
							res.Header().Del(echo.HeaderContentEncoding)
						}
						// Nothing has been written, so the response is reset to
						// its uncompressed state.
						res.Writer = rw
						compressor.Reset(io.Discard)
						if crw.hasHeader && !crw.wroteHeader {
							if len(crw.headerContentLength) != 0 {
								rw.Header().Set(echo.HeaderContentLength, crw.headerContentLength)
							}
							rw.WriteHeader(crw.code)
						}
					} else if !crw.minLengthExceeded {
						res.Writer = rw
						if len(crw.headerContentLength) != 0 {
							crw.Header().Set(echo.HeaderContentLength, crw.headerContentLength)
						}
						crw.ResponseWriter.WriteHeader(crw.code)
						rw.Write(crw.buffer.B)
						compressor.Reset(io.Discard)
					}
				}

				compressor.Close()
				bytebufferpool.Put(buffer)
				scheme.Release(compressor)
			}()

			res.Writer = crw

			return next(c)
		}
	}
}

type compressResponseWriter struct {
	Compressor
	http.ResponseWriter

	hasHeader           bool
	wroteHeader         bool
	wroteBody           bool
	minLength           int
	minLengthExceeded   bool
	buffer              *bytebufferpool.ByteBuffer
	code                int
	headerContentLength string
	scheme              string
	contentTypes        []string
	passThrough         bool
}

func (w *compressResponseWriter) WriteHeader(code int) {
	if code == http.StatusNoContent {
		w.Header().Del(echo.HeaderContentEncoding)
	}

	w.headerContentLength = w.Header().Get(echo.HeaderContentLength)
	w.Header().Del(echo.HeaderContentLength)

	if !w.canCompress(w.Header().Get(echo.HeaderContentType)) {
		w.passThrough = true
	}

	w.hasHeader = true

	// The header is written as soon as it is known whether the response
	// will be compressed.
	w.code = code
}

func (w *compressResponseWriter) canCompress(contentType string) bool {
	if len(w.contentTypes) == 0 {
		return true
	}

	for _, t := range w.contentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}

	return false
}

func (w *compressResponseWriter) writeCompressedHeader() {
	w.minLengthExceeded = true

	w.Header().Set(echo.HeaderContentEncoding, w.scheme)
	if w.hasHeader {
		w.ResponseWriter.WriteHeader(w.code)
		w.wroteHeader = true
	}
}

func (w *compressResponseWriter) writePlainHeader() {
	if !w.wroteHeader {
		if len(w.headerContentLength) != 0 {
			w.Header().Set(echo.HeaderContentLength, w.headerContentLength)
		}
		w.ResponseWriter.WriteHeader(w.code)
		w.wroteHeader = true
	}
}

func (w *compressResponseWriter) Write(b []byte) (int, error) {
	if w.Header().Get(echo.HeaderContentType) == "" {
		w.Header().Set(echo.HeaderContentType, http.DetectContentType(b))
	}

	w.wroteBody = true

	if !w.hasHeader {
		w.WriteHeader(http.StatusOK)
	}

	if w.passThrough {
		w.writePlainHeader()
		return w.ResponseWriter.Write(b)
	}

	if w.minLengthExceeded {
		return w.Compressor.Write(b)
	}

	w.buffer.Write(b)

	if w.buffer.Len() < w.minLength {
		return len(b), nil
	}

	w.writeCompressedHeader()

	if _, err := w.Compressor.Write(w.buffer.B); err != nil {
		return 0, err
	}

	return len(b), nil
}

func (w *compressResponseWriter) Flush() {
	if !w.hasHeader {
		w.WriteHeader(http.StatusOK)
	}

	if w.passThrough {
		w.writePlainHeader()

		if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
			flusher.Flush()
		}

		return
	}

	if !w.minLengthExceeded {
		w.writeCompressedHeader()
		w.Compressor.Write(w.buffer.B)
	}

	w.Compressor.Flush()

	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *compressResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func (w *compressResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
