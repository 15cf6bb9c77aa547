package store

import "juryduty/internal/platform/logger"

// Option adjusts a Store before backends open
type Option func(*Store) error

// WithLogger sets the logger handed to backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
