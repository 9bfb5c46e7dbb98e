package directory

import (
	"context"
	"testing"
	"time"

	"github.com/michael-freling/file-explorer/internal/db"
	"github.com/michael-freling/file-explorer/internal/xlog"
	"github.com/michael-freling/file-explorer/internal/xslices"
	"github.com/stretchr/testify/require"
)

var (
	_ Storage = (*db.KeyValueClient)(nil)

	testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
)

const testStorageKey = "directory-structure"

type tester struct {
	dbClient db.TestClient
	clock    *testClock
}

func newTester(t *testing.T) tester {
	t.Helper()

	return tester{
		dbClient: db.NewTestClient(t),
		clock:    &testClock{now: testTime},
	}
}

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

func (clock *testClock) advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

func (tester tester) getStore() *Store {
	return NewStore(xlog.Nop(), tester.dbClient.KeyValue(), testStorageKey,
		WithClock(tester.clock.Now),
	)
}

func (tester tester) getAPI(options ...APIOption) *API {
	return NewAPI(xlog.Nop(), tester.getStore(), options...)
}

func (tester tester) getCoordinator(options ...APIOption) *Coordinator {
	return NewCoordinator(xlog.Nop(), tester.getAPI(options...))
}

func (tester tester) saveItems(t *testing.T, items []Item) {
	t.Helper()
	require.NoError(t, tester.getStore().Save(context.Background(), items))
}

func (tester tester) loadItems(t *testing.T) []Item {
	t.Helper()
	items, err := tester.getStore().Load(context.Background())
	require.NoError(t, err)
	return items
}

func sequentialIDs(ids ...string) func() string {
	index := 0
	return func() string {
		id := ids[index%len(ids)]
		index++
		return id
	}
}

func ptr(s string) *string {
	return &s
}

func idsOf(items []Item) []string {
	return xslices.Map(items, func(item Item) string {
		return item.ID
	})
}
