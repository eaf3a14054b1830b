package lineio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeTempGzip(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.txt.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(contents)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestGzipSourceReturnsCompleteLines(t *testing.T) {
	content := "1 2\n3 4\n# skip\n5 6\n"
	path := writeTempGzip(t, content)

	src := Open(path)
	if src == nil {
		t.Fatalf("Open() returned nil")
	}
	defer src.Close()

	got := readAllLines(t, src)
	if got != content {
		t.Fatalf("reassembled content = %q, want %q", got, content)
	}
}

func TestGzipSourceCarriesPartialLineAcrossCalls(t *testing.T) {
	var sb strings.Builder
	const lines = 2000
	for i := 0; i < lines; i++ {
		sb.WriteString("100 200\n")
	}
	path := writeTempGzip(t, sb.String())

	src := Open(path)
	if src == nil {
		t.Fatalf("Open() returned nil")
	}
	defer src.Close()

	total := 0
	for !src.Eof() {
		buf, n, err := src.ReadBlock(97) // small, unaligned window
		if err != nil {
			t.Fatalf("ReadBlock: %v", err)
		}
		if n > 0 && buf[n-1] != '\n' {
			t.Fatalf("block did not end on a newline: %q", buf[:n])
		}
		total += strings.Count(string(buf[:n]), "\n")
	}
	if total != lines {
		t.Fatalf("total lines = %d, want %d", total, lines)
	}
}

func TestGzipSourceOpenMissingFileReturnsNil(t *testing.T) {
	src := Open(filepath.Join(t.TempDir(), "missing.txt.gz"))
	if src != nil {
		t.Fatalf("Open() on a missing gzip file = %v, want nil", src)
	}
}
