package frontend

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/michael-freling/file-explorer/internal/db"
	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/stretchr/testify/require"
)

const testStorageKey = "directory-structure"

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

type tester struct {
	logger   *slog.Logger
	dbClient db.TestClient
}

func newTester(t *testing.T) tester {
	t.Helper()

	return tester{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		dbClient: db.NewTestClient(t, db.WithNopLogger()),
	}
}

func (tester tester) getStore() *directory.Store {
	return directory.NewStore(tester.logger, tester.dbClient.KeyValue(), testStorageKey,
		directory.WithClock(func() time.Time {
			return testTime
		}),
	)
}

func (tester tester) getDirectoryService(t *testing.T, ids ...string) *DirectoryService {
	t.Helper()

	store := tester.getStore()
	_, err := store.Reset(context.Background())
	require.NoError(t, err)

	options := make([]directory.APIOption, 0)
	if len(ids) > 0 {
		index := 0
		options = append(options, directory.WithIDGenerator(func() string {
			id := ids[index%len(ids)]
			index++
			return id
		}))
	}
	coordinator := directory.NewCoordinator(tester.logger, directory.NewAPI(tester.logger, store, options...))
	return NewDirectoryService(tester.logger, coordinator)
}
