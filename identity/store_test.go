package identity

import (
	"context"
	"testing"

	"github.com/debatelab/speakerkit/errors"
)

func TestMemoryStore_ResolveUnmapped(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Resolve(context.Background(), "t1", "SPEAKER_00")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestMemoryStore_UpsertIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.SetMapping(ctx, "t1", "SPEAKER_00", "alice"); err != nil {
			t.Fatalf("SetMapping() attempt %d error = %v", i, err)
		}
	}

	got, err := s.Resolve(ctx, "t1", "SPEAKER_00")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "alice" {
		t.Errorf("Resolve() = %q, want alice", got)
	}
}

func TestMemoryStore_Reassign(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SetMapping(ctx, "t1", "SPEAKER_00", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMapping(ctx, "t1", "SPEAKER_00", "bob"); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Resolve(ctx, "t1", "SPEAKER_00")
	if got != "bob" {
		t.Errorf("expected reassignment to win, got %q", got)
	}
}

func TestMemoryStore_EmptyProfileClears(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SetMapping(ctx, "t1", "SPEAKER_00", "alice")
	if err := s.SetMapping(ctx, "t1", "SPEAKER_00", ""); err != nil {
		t.Fatalf("clear error = %v", err)
	}

	_, err := s.Resolve(ctx, "t1", "SPEAKER_00")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND after clear, got %v", err)
	}
	// Clearing an absent mapping is fine.
	if err := s.SetMapping(ctx, "t1", "SPEAKER_00", ""); err != nil {
		t.Errorf("clearing absent mapping should not error: %v", err)
	}
}

func TestMemoryStore_MappingsForTranscript(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SetMapping(ctx, "t1", "SPEAKER_00", "alice")
	s.SetMapping(ctx, "t1", "SPEAKER_01", "bob")
	s.SetMapping(ctx, "t2", "SPEAKER_00", "bob")

	got, err := s.MappingsForTranscript(ctx, "t1")
	if err != nil {
		t.Fatalf("MappingsForTranscript() error = %v", err)
	}
	if len(got) != 2 || got["SPEAKER_00"] != "alice" || got["SPEAKER_01"] != "bob" {
		t.Errorf("unexpected mappings: %v", got)
	}
}

func TestMemoryStore_MappingsForProfile(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SetMapping(ctx, "t1", "SPEAKER_00", "alice")
	s.SetMapping(ctx, "t2", "SPEAKER_01", "alice")
	s.SetMapping(ctx, "t2", "SPEAKER_00", "bob")

	got, err := s.MappingsForProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("MappingsForProfile() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 mappings, got %d", len(got))
	}
}

func TestMemoryStore_FieldValidation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SetMapping(ctx, "", "SPEAKER_00", "alice"); !errors.IsCode(err, errors.CodeMissingField) {
		t.Errorf("expected MISSING_FIELD for empty transcript id, got %v", err)
	}
	if err := s.SetMapping(ctx, "t1", "", "alice"); !errors.IsCode(err, errors.CodeMissingField) {
		t.Errorf("expected MISSING_FIELD for empty label, got %v", err)
	}
	if _, err := s.Resolve(ctx, "t1", ""); !errors.IsCode(err, errors.CodeMissingField) {
		t.Errorf("expected MISSING_FIELD, got %v", err)
	}
}
