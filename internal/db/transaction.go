package db

import (
	"context"

	"gorm.io/gorm"
)

type transactionKey struct{}

func withTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, transactionKey{}, tx)
}

func transactionFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx
}

// NewTransaction runs f in a transaction. ORM clients called with the ctx passed to f
// join the transaction.
func NewTransaction(ctx context.Context, client *Client, f func(context.Context) error) error {
	if transactionFromContext(ctx) != nil {
		return f(ctx)
	}
	return client.connection.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(withTransaction(ctx, tx))
	})
}
