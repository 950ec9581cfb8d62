// Package vasttools provides shared file-format helpers for the vast-tools
// command line programs.
package vasttools

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type Compression byte

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZ
	CompressionBZip2
)

// Magic byte signatures from https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZ:     {0x1f, 0x9d},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// SniffCompression reads up to 6 bytes from r and reports which compression
// format, if any, they announce. Fewer than 6 available bytes is not an error;
// a short or empty stream is simply reported as uncompressed.
func SniffCompression(r io.Reader) (Compression, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return CompressionUnknown, err
	}
	buff = buff[:n]

	for format, sig := range compressionSigs {
		if bytes.HasPrefix(buff, sig) {
			return format, nil
		}
	}

	return CompressionNone, nil
}

// Open opens the named file and transparently decompresses it if its leading
// bytes identify a known compression format. Closing the returned ReadCloser
// closes the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	format, err := SniffCompression(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	switch format {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{gz, f}, nil
	case CompressionZip:
		return &wrappedReadCloser{zipstream.NewReader(f), f}, nil
	case CompressionBZip2:
		return &wrappedReadCloser{bzip2.NewReader(f), f}, nil
	case CompressionXZ:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{xzr, f}, nil
	case CompressionZ:
		zr, err := zlib.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{zr, f}, nil
	}

	return f, nil
}

// wrappedReadCloser reads from a decompressor while retaining the underlying
// file so that Close releases it.
type wrappedReadCloser struct {
	io.Reader
	file *os.File
}

func (w *wrappedReadCloser) Close() error {
	if c, ok := w.Reader.(io.Closer); ok {
		c.Close()
	}
	return w.file.Close()
}
