package store

import "devsolutions/internal/platform/logger"

// Option adjusts the Store before any backend is opened
type Option func(*Store) error

// WithLogger routes store and SQL trace logs through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithAppName tags connections so operators can tell this service apart:
// application_name on postgres and CLIENT SETNAME on redis
func WithAppName(name string) Option {
	return func(s *Store) error {
		s.appName = name
		return nil
	}
}
