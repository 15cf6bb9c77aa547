package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should map to nil")
	}
	now := time.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("Ptr = %v", p)
	}
}

func TestUTCPtr(t *testing.T) {
	if UTCPtr(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))
	p := UTCPtr(&at)
	if p == nil || p.Location() != time.UTC || !p.Equal(at) {
		t.Fatalf("UTCPtr = %v", p)
	}
}
