package credentials

import "context"

// Repository is a string key/value store. Get reports found=false (and no
// error) for a missing key; Clear is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key string, value string) error
	Clear(ctx context.Context) error
}
