package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		_, _ = w.Write([]byte(`[{"name":"Goblet Squat","primaryMuscles":["quadriceps"]},{"name":"Push Up","category":"strength"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSeedCatalogIfEmpty(t *testing.T) {
	db := testutil.OpenTestDB(t)
	hits := 0
	srv := catalogServer(t, &hits)

	require.NoError(t, seedCatalogIfEmpty(context.Background(), db, srv.URL))
	var count int64
	require.NoError(t, db.Model(&models.Exercise{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// A populated catalog is left alone.
	require.NoError(t, seedCatalogIfEmpty(context.Background(), db, srv.URL))
	assert.Equal(t, 1, hits)
}

func TestSeedCatalogIfEmpty_FetchError(t *testing.T) {
	db := testutil.OpenTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	assert.Error(t, seedCatalogIfEmpty(context.Background(), db, srv.URL))
}

func TestClose(t *testing.T) {
	db := testutil.OpenTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	assert.NoError(t, Close(db, rdb))
	assert.Error(t, rdb.Ping(context.Background()).Err())
	assert.NoError(t, Close(nil, nil))
}
