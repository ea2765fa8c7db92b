package ginsalvage

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

// maxDecoderMemory caps the window a zstd frame may ask the decoder to allocate.
const maxDecoderMemory = 64 << 20

// errUnsupportedEncoding is returned for a Content-Encoding other than
// identity, gzip or zstd.
type errUnsupportedEncoding string

func (e errUnsupportedEncoding) Error() string {
	return fmt.Sprintf("unsupported content encoding %q", string(e))
}

// zstdDecoderPool keeps warmed-up streaming decoders; each one is Reset onto a body before use.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxDecoderMemory))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// byteLimit is the most bytes a body of maxLength characters can take in UTF-8.
func byteLimit(maxLength int) int {
	if maxLength > (math.MaxInt-1)/utf8.UTFMax {
		return math.MaxInt - 1
	}
	return maxLength * utf8.UTFMax
}

// compressedLimit leaves room for framing overhead on incompressible bodies.
func compressedLimit(limit int) int {
	overhead := limit/64 + 1024
	if limit > math.MaxInt-1-overhead {
		return math.MaxInt - 1
	}
	return limit + overhead
}

// readLimited reads r up to limit bytes and fails with
// salvage.ErrSizeLimitExceeded when r holds more.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", salvage.ErrSizeLimitExceeded, limit)
	}
	return data, nil
}

// readBody reads body and decodes it according to the Content-Encoding
// header. The decoded body is never read past limit bytes, and a compressed
// body only gets room for its framing on top of that.
func readBody(body io.Reader, contentEncoding string, limit int) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(contentEncoding))
	switch enc {
	case "", "identity", "gzip", "x-gzip", "zstd":
	default:
		return nil, errUnsupportedEncoding(enc)
	}

	rawLimit := limit
	if enc != "" && enc != "identity" {
		rawLimit = compressedLimit(limit)
	}
	raw, err := readLimited(body, rawLimit)
	if err != nil {
		return nil, err
	}

	switch enc {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		defer zr.Close()
		return decodedBody("gzip", zr, limit)
	case "zstd":
		decoder := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(decoder)
		if err := decoder.Reset(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("zstd body: %w", err)
		}
		return decodedBody("zstd", decoder, limit)
	}
	return raw, nil
}

func decodedBody(name string, r io.Reader, limit int) ([]byte, error) {
	data, err := readLimited(r, limit)
	if err != nil {
		return nil, fmt.Errorf("%s body: %w", name, err)
	}
	return data, nil
}
