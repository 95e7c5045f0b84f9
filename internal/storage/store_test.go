// ABOUTME: Tests for the in-memory store implementation
// ABOUTME: Verifies missing-key semantics and value copy isolation
package storage

import (
	"bytes"
	"testing"
)

func TestMemoryStore_MissingKey(t *testing.T) {
	s := NewMemoryStore()

	v, err := s.Get("absent")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil for a missing key", err)
	}
	if v != nil {
		t.Errorf("Get() = %v, want nil for a missing key", v)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set(DocumentKey, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, err := s.Get(DocumentKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(v, []byte(`{"version":1}`)) {
		t.Errorf("Get() = %s", v)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()

	in := []byte("original")
	s.Set("k", in)
	in[0] = 'X'

	out, _ := s.Get("k")
	if string(out) != "original" {
		t.Error("store aliased the caller's write buffer")
	}

	out[0] = 'Y'
	again, _ := s.Get("k")
	if string(again) != "original" {
		t.Error("store aliased a returned read buffer")
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", []byte("one"))
	s.Set("k", []byte("two"))

	v, _ := s.Get("k")
	if string(v) != "two" {
		t.Errorf("Get() = %s, want two", v)
	}
}
