package holidayservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc, manual []string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "AU", 2*time.Second, manual, nopLogger{}), srv
}

func feedHandler(t *testing.T, calls *int32, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/api/v3/PublicHolidays/2026/AU", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestIsHoliday_FromFeed(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, feedHandler(t, &calls,
		`[{"date":"2026-01-26","localName":"Australia Day","name":"Australia Day","countryCode":"AU"}]`), nil)

	holiday, err := client.IsHoliday(context.Background(), time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, holiday)

	holiday, err = client.IsHoliday(context.Background(), time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, holiday)
}

func TestIsHoliday_CachesPerYear(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, feedHandler(t, &calls, `[]`), nil)

	for i := 0; i < 5; i++ {
		_, err := client.IsHoliday(context.Background(), time.Date(2026, 6, 1+i, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "feed queried once per year")
}

func TestIsHoliday_ManualListWins(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, feedHandler(t, &calls, `[]`), []string{"2026-12-24"})

	holiday, err := client.IsHoliday(context.Background(), time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, holiday)
	assert.Zero(t, atomic.LoadInt32(&calls), "manual hit does not touch the feed")
}

func TestIsHoliday_FeedFailureDegradesGracefully(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, []string{"2026-12-25"})

	// Фид лежит: ручной список продолжает работать, ошибки наверх нет
	holiday, err := client.IsHoliday(context.Background(), time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, holiday)

	holiday, err = client.IsHoliday(context.Background(), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, holiday)
}

func TestIsHoliday_NoContentMeansNoHolidays(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	holiday, err := client.IsHoliday(context.Background(), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, holiday)
}

func TestNewClient_SkipsMalformedManualDates(t *testing.T) {
	client := NewClient("http://unused", "AU", time.Second, []string{"2026-12-25", "not-a-date", "25/12/2026"}, nopLogger{})

	assert.Len(t, client.manual, 1)
	_, ok := client.manual["2026-12-25"]
	assert.True(t, ok)
}
