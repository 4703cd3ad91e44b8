package diag

import (
	"strings"
	"testing"
)

func TestSinkCollectsInOrder(t *testing.T) {
	var s Sink
	s.Add(CodeNoBounds, "T", "no bounds were inferred")
	s.Add(CodeAmbiguousBounds, "U", "no unique best bound among %d candidates", 3)
	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(all))
	}
	if all[0].Code != CodeNoBounds || all[1].Subject != "U" {
		t.Errorf("diagnostics out of order: %v", all)
	}
	if !strings.Contains(all[1].Message, "3 candidates") {
		t.Errorf("formatting lost: %q", all[1].Message)
	}
}

func TestSinkErrCombines(t *testing.T) {
	var s Sink
	if s.Err() != nil {
		t.Error("empty sink yields nil error")
	}
	s.Add(CodeNoBounds, "T", "no bounds were inferred")
	s.Add(CodeNoProgress, "U", "type parameter could not be inferred")
	err := s.Err()
	if err == nil {
		t.Fatal("expected combined error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "no-bounds") || !strings.Contains(msg, "no-progress") {
		t.Errorf("combined error is missing parts: %q", msg)
	}
}

func TestNilSinkDiscards(t *testing.T) {
	var s *Sink
	s.Add(CodeNoBounds, "T", "ignored")
	if s.All() != nil || s.Err() != nil {
		t.Error("nil sink must discard everything")
	}
}
