package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"taxiservice/pkg/logger"
	"taxiservice/storage"
	"taxiservice/storage/postgres"
	"taxiservice/storage/storagetest"
)

// POSTGRES_TEST_URL names a throwaway database; every case truncates it.
func openTestStore(t *testing.T) storage.IStorage {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	store, err := postgres.Open(context.Background(), url, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Reset(context.Background()))
	return store
}

func TestRepos(t *testing.T) {
	storagetest.Run(t, openTestStore)
}
