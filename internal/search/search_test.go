package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc := NewService(config.NewsConfig{})
	_, err := svc.Search(context.Background(), "   ")
	ae := apperr.From(err)
	require.Equal(t, apperr.KindBadRequest, ae.Kind)
	require.Equal(t, "Missing query param q", ae.Message)
}

func TestSearch_DemoWhenUnconfigured(t *testing.T) {
	svc := NewService(config.NewsConfig{})
	svc.now = func() time.Time { return time.Date(2025, 10, 29, 23, 0, 0, 0, time.UTC) }
	before := testutil.ToFloat64(metrics.SearchUpstream.WithLabelValues("demo"))

	a, err := svc.Search(context.Background(), "golang")
	require.NoError(t, err)
	b, err := svc.Search(context.Background(), "something else entirely")
	require.NoError(t, err)

	require.Equal(t, DemoSize, a.Total)
	require.Len(t, a.Items, a.Total)
	require.Equal(t, a.Total, b.Total)
	require.Equal(t, "golang", a.Query)
	require.Equal(t, "golang: headline #1", a.Items[0].Title)
	require.Equal(t, "2025-10-29", a.Items[0].Date)
	require.Equal(t, "Demo", a.Items[5].Source)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.SearchUpstream.WithLabelValues("demo")))
}

func TestSearch_ProviderResultsNormalized(t *testing.T) {
	var gotQuery map[string]string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = map[string]string{
			"q":        r.URL.Query().Get("q"),
			"language": r.URL.Query().Get("language"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"sortBy":   r.URL.Query().Get("sortBy"),
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "ok",
			"totalResults": 2,
			"articles": []map[string]interface{}{
				{
					"title":       "Bosques",
					"description": "Los bosques crecen",
					"publishedAt": "2025-10-28T14:03:00Z",
					"url":         "https://news.example.com/bosques",
					"urlToImage":  "https://news.example.com/bosques.jpg",
					"source":      map[string]string{"name": "El Diario"},
				},
				{"publishedAt": nil},
			},
		})
	}))
	defer srv.Close()

	svc := NewService(config.NewsConfig{APIKey: "k-123", Language: "es", BaseURL: srv.URL, PageSize: 10})
	res, err := svc.Search(context.Background(), " naturaleza ")
	require.NoError(t, err)

	require.Equal(t, "k-123", gotKey)
	require.Equal(t, map[string]string{"q": "naturaleza", "language": "es", "pageSize": "10", "sortBy": "publishedAt"}, gotQuery)

	require.Equal(t, "naturaleza", res.Query)
	require.Equal(t, 2, res.Total)
	require.Equal(t, Item{
		Title:  "Bosques",
		Text:   "Los bosques crecen",
		Date:   "2025-10-28",
		Source: "El Diario",
		Link:   "https://news.example.com/bosques",
		Image:  "https://news.example.com/bosques.jpg",
	}, res.Items[0])
	require.Equal(t, Item{Title: DefaultTitle, Source: DefaultSource, Link: DefaultLink, Image: DefaultImage}, res.Items[1])
}

func TestSearch_ProviderErrorIsBadGateway(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"})
	}))
	defer srv.Close()

	svc := NewService(config.NewsConfig{APIKey: "bad", BaseURL: srv.URL, PageSize: 10})
	_, err := svc.Search(context.Background(), "x")
	ae := apperr.From(err)
	require.Equal(t, apperr.KindBadGateway, ae.Kind)
	require.Equal(t, http.StatusUnauthorized, ae.UpstreamStatus)
	require.Contains(t, ae.Message, "Your API key is invalid")
	require.Equal(t, 1, calls, "provider errors must not be retried")
}

func TestSearch_ProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := NewService(config.NewsConfig{APIKey: "k", BaseURL: url, PageSize: 10, Timeout: time.Second})
	_, err := svc.Search(context.Background(), "x")
	require.True(t, apperr.Is(err, apperr.KindBadGateway), "got %v", err)
}
