package util

import (
	"sort"
	"testing"
)

func TestMap(t *testing.T) {
	lengths := Map([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) })
	expected := []int{1, 2, 3}
	for i, v := range lengths {
		if v != expected[i] {
			t.Errorf("index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestUnique(t *testing.T) {
	result := Unique([]string{"SPEAKER_00", "SPEAKER_01", "SPEAKER_00"})
	if len(result) != 2 {
		t.Fatalf("expected 2 unique values, got %d", len(result))
	}
	if result[0] != "SPEAKER_00" || result[1] != "SPEAKER_01" {
		t.Errorf("expected first-occurrence order, got %v", result)
	}
}

func TestPtrDeref(t *testing.T) {
	p := Ptr(0.25)
	if *p != 0.25 {
		t.Errorf("expected 0.25, got %v", *p)
	}
	if Deref(p) != 0.25 {
		t.Errorf("Deref(p) = %v, want 0.25", Deref(p))
	}
	var nilP *float64
	if Deref(nilP) != 0 {
		t.Errorf("Deref(nil) = %v, want 0", Deref(nilP))
	}
}

func TestKeys(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	keys := Keys(m)
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected [a b], got %v", keys)
	}
}
