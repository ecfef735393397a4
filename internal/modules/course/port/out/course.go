package out

import "context"

// StateStore persists the whole serialized root under a single key.
type StateStore interface {
	// Read returns found=false when nothing has been stored yet.
	Read(ctx context.Context) (payload []byte, found bool, err error)
	Write(ctx context.Context, payload []byte) error
}
