package directory

import "context"

//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=directory

// Storage is a key-value storage holding named records, like localStorage of a browser
type Storage interface {
	// GetItem returns false if a record doesn't exist
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key string, value string) error

	// Transaction runs f atomically. Calls with the ctx passed to f join the transaction.
	Transaction(ctx context.Context, f func(context.Context) error) error
}
