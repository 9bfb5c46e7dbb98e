package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueClient_GetItem(t *testing.T) {
	dbClient := NewTestClient(t)
	LoadTestData(t, dbClient, []KeyValue{
		{Name: "directory-structure", Value: "[]"},
	})

	testCases := []struct {
		name      string
		key       string
		want      string
		wantFound bool
	}{
		{
			name:      "Find a record",
			key:       "directory-structure",
			want:      "[]",
			wantFound: true,
		},
		{
			name: "Find an unknown record",
			key:  "unknown",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, gotFound, gotErr := dbClient.KeyValue().GetItem(context.Background(), tc.key)
			require.NoError(t, gotErr)
			assert.Equal(t, tc.wantFound, gotFound)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKeyValueClient_SetItem(t *testing.T) {
	dbClient := NewTestClient(t)

	testCases := []struct {
		name     string
		existing []KeyValue
		key      string
		value    string
	}{
		{
			name:  "Create a record",
			key:   "directory-structure",
			value: `[{"id":"1"}]`,
		},
		{
			name: "Overwrite a record",
			existing: []KeyValue{
				{Name: "directory-structure", Value: `[{"id":"1"}]`},
			},
			key:   "directory-structure",
			value: `[]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbClient.Truncate(t, &KeyValue{})
			LoadTestData(t, dbClient, tc.existing)

			ctx := context.Background()
			kv := dbClient.KeyValue()
			require.NoError(t, kv.SetItem(ctx, tc.key, tc.value))
			// idempotent
			require.NoError(t, kv.SetItem(ctx, tc.key, tc.value))

			got, found, err := kv.GetItem(ctx, tc.key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tc.value, got)

			var count int64
			require.NoError(t, dbClient.connection.Model(&KeyValue{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestKeyValueClient_Transaction(t *testing.T) {
	dbClient := NewTestClient(t)
	kv := dbClient.KeyValue()
	ctx := context.Background()
	require.NoError(t, kv.SetItem(ctx, "key", "before"))

	errRollback := errors.New("rollback")
	gotErr := kv.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, kv.SetItem(ctx, "key", "after"))

		got, _, err := kv.GetItem(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "after", got)
		return errRollback
	})
	assert.ErrorIs(t, gotErr, errRollback)

	got, found, err := kv.GetItem(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "before", got)
}
