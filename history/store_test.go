package history

import (
	"path/filepath"
	"testing"
)

func TestStoreAppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Session() == "" {
		t.Error("expected a non-empty session id")
	}

	for _, line := range []string{"one", "two", "three"} {
		if err := s.Append(line); err != nil {
			t.Fatal(err)
		}
	}

	lines, err := s.Load(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Errorf("expected [one two three], got %v", lines)
	}

	// Load honours the limit, keeping the most recent lines.
	lines, err = s.Load(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "two" || lines[1] != "three" {
		t.Errorf("expected [two three], got %v", lines)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append("remembered"); err != nil {
		t.Fatal(err)
	}
	first := s.Session()
	s.Close()

	s, err = OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	lines, err := s.Load(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "remembered" {
		t.Errorf("expected [remembered], got %v", lines)
	}
	if s.Session() == first {
		t.Error("expected a fresh session id per open")
	}
}
