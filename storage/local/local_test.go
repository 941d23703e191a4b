package local

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
	"github.com/debatelab/speakerkit/storage"
)

func TestStorage_UploadDownload(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}
	ctx := context.Background()

	content := []byte(`{"duration": 1}`)
	if err := s.Upload(ctx, "jobs/1/debate_transcription.json", bytes.NewReader(content)); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	r, err := s.Download(ctx, "jobs/1/debate_transcription.json")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestStorage_DownloadMissing(t *testing.T) {
	s, _ := NewStorage(t.TempDir())

	_, err := s.Download(context.Background(), "nope.json")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestStorage_ExistsAndDelete(t *testing.T) {
	s, _ := NewStorage(t.TempDir())
	ctx := context.Background()

	s.Upload(ctx, "a.json", bytes.NewReader([]byte("x")))

	ok, err := s.Exists(ctx, "a.json")
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v", ok, err)
	}
	if err := s.Delete(ctx, "a.json"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	ok, _ = s.Exists(ctx, "a.json")
	if ok {
		t.Error("expected object gone after delete")
	}
	// Deleting again is fine.
	if err := s.Delete(ctx, "a.json"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestStorage_List(t *testing.T) {
	s, _ := NewStorage(t.TempDir())
	ctx := context.Background()

	s.Upload(ctx, "jobs/1/a.json", bytes.NewReader([]byte("a")))
	s.Upload(ctx, "jobs/1/b.json", bytes.NewReader([]byte("bb")))
	s.Upload(ctx, "jobs/2/c.json", bytes.NewReader([]byte("c")))

	files, err := s.List(ctx, "jobs/1/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}
	if files[0].Path != "jobs/1/a.json" || files[1].Path != "jobs/1/b.json" {
		t.Errorf("unexpected paths: %+v", files)
	}
	if files[1].Size != 2 {
		t.Errorf("expected size 2, got %d", files[1].Size)
	}
}

func TestOpen_FileSchemeUsesAbsoluteKeys(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	loc, err := storage.ParseLocation("file://" + filepath.Join(dir, "debate_transcription.json"))
	if err != nil {
		t.Fatalf("ParseLocation() error = %v", err)
	}
	s, err := storage.Open(ctx, loc, storage.Config{}, logger.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Upload(ctx, loc.Key, bytes.NewReader([]byte("payload"))); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	r, err := s.Download(ctx, loc.Key)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "payload" {
		t.Errorf("got %q", got)
	}
}
