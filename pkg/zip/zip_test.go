package zip

import (
	archive "archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveRoundTrip(t *testing.T) {
	data := Archive([]Entry{
		{Name: "blog_post.md", Data: []byte("# Post")},
		{Name: "tweet/1.txt", Data: []byte("one")},
	})
	if len(data) == 0 {
		t.Fatal("empty archive")
	}

	zr, err := archive.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("files = %d, want 2", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	if string(content) != "# Post" {
		t.Fatalf("content = %q", content)
	}
}
