//go:build !windows

package storage

// NewPlatformResolver returns the resolver for this operating system.
func NewPlatformResolver() Resolver {
	return NewLsblk()
}
