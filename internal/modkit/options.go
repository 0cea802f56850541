package modkit

// Option sets part of a module's identity
type Option func(*Built)

// WithName sets the module name reported in logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix sets the path the module mounts under, e.g. "/contact"
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}
