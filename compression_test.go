package vasttools

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSniffCompression(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte("payload"))
	w.Close()

	for _, v := range []struct {
		in   []byte
		want Compression
	}{
		{gz.Bytes(), CompressionGzip},
		{[]byte("Event\tEIJ1\n"), CompressionNone},
		{[]byte{}, CompressionNone},
		{[]byte{0x42, 0x5a, 0x68}, CompressionBZip2},
	} {
		got, err := SniffCompression(bytes.NewReader(v.in))
		if err != nil {
			t.Fatal(err)
		}
		if got != v.want {
			t.Errorf("SniffCompression = %v, expected %v", got, v.want)
		}
	}
}

func TestOpenPlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	const body = "a\tb\tc\n1\t2\t3\n"

	plain := filepath.Join(dir, "plain.tab")
	if err := os.WriteFile(plain, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	zipped := filepath.Join(dir, "zipped.tab.gz")
	f, err := os.Create(zipped)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte(body))
	gz.Close()
	f.Close()

	for _, path := range []string{plain, zipped} {
		r, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != body {
			t.Errorf("Open(%s) read %q", path, got)
		}
	}
}

func TestDetectDelimiter(t *testing.T) {
	for _, v := range []struct {
		in   string
		want rune
	}{
		{"a\tb\tc\n1\t2\t3\n4\t5\t6\n", '\t'},
		{"a,b,c\n1,2,3\n4,5,6\n", ','},
	} {
		if got := DetectDelimiter(strings.NewReader(v.in)); got != v.want {
			t.Errorf("DetectDelimiter(%q) = %q, expected %q", v.in, got, v.want)
		}
	}
}
