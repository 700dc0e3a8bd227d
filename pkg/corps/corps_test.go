package corps

import "testing"

func TestFullDescription(t *testing.T) {
	s := New()
	if got := s.FullDescription("BEN"); got != "BC Benefit Company" {
		t.Errorf("FullDescription(BEN) = %q", got)
	}
	if got := s.FullDescription("NOPE"); got != "" {
		t.Errorf("FullDescription(NOPE) = %q, want empty", got)
	}
}

func TestNumberedDescription(t *testing.T) {
	s := New()
	if got := s.NumberedDescription("ULC"); got != "Numbered Unlimited Liability Company" {
		t.Errorf("NumberedDescription(ULC) = %q", got)
	}
	// Types without a numbered form resolve to nothing.
	if got := s.NumberedDescription("SP"); got != "" {
		t.Errorf("NumberedDescription(SP) = %q, want empty", got)
	}
}
