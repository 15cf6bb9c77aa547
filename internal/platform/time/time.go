// Package time holds time helpers shared by repos and DTO mappers
package time

import "time"

// Ptr returns &t, or nil for the zero time
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// UTCPtr is Ptr after converting a non nil value to UTC
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return Ptr(t.UTC())
}
