package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"
)

// KeyValue is a named record of a key-value storage, similar to the localStorage of a browser
type KeyValue struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	CreatedAt uint `gorm:"autoCreateTime"`
	UpdatedAt uint `gorm:"autoUpdateTime"`
}

type KeyValueClient struct {
	ORMClient[KeyValue]
	client *Client
}

func (client *Client) KeyValue() *KeyValueClient {
	return &KeyValueClient{
		ORMClient: ORMClient[KeyValue]{
			connection: client.connection,
		},
		client: client,
	}
}

// GetItem returns false if no record exists for a key
func (kv *KeyValueClient) GetItem(ctx context.Context, key string) (string, bool, error) {
	record, err := kv.FindByValue(ctx, &KeyValue{Name: key})
	if errors.Is(err, ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("FindByValue: %w", err)
	}
	return record.Value, true, nil
}

// SetItem overwrites the whole value of a key in a single statement
func (kv *KeyValueClient) SetItem(ctx context.Context, key string, value string) error {
	record := KeyValue{
		Name:  key,
		Value: value,
	}
	err := kv.getConnection(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).
		Error
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (kv *KeyValueClient) Transaction(ctx context.Context, f func(context.Context) error) error {
	return NewTransaction(ctx, kv.client, f)
}
