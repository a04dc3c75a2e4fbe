//go:build !linux

package platform

// Open reports ErrUnsupported outside Linux.
func Open(display string) (Backend, error) {
	return nil, ErrUnsupported
}
