package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ad-widget/internal/domain"
	"ad-widget/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, url string, cookie string) (AdRepository, *metrics.RepositoryMetrics) {
	t.Helper()
	m := metrics.NewRepositoryMetrics(prometheus.NewRegistry())
	return NewHTTPAdRepository(Options{BaseURL: url, SessionCookie: cookie}, m), m
}

func TestGetAds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get_ads", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "Shoes", "category": "Fashion", "ctr": 4.2, "image_url": "shoes.jpg", "target_page": "https://shop.example/shoes", "clicks": 10},
			{"id": 2, "title": "Trip", "category": "Travel", "ctr": 7, "image_url": "trip.jpg", "target_page": "https://travel.example"}
		]`))
	}))
	defer srv.Close()

	repo, m := newRepo(t, srv.URL+"/", "")

	ads, err := repo.GetAds(context.Background())
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, domain.Advertisement{
		ID: 1, Title: "Shoes", Category: "Fashion", CTR: 4.2,
		ImageURL: "shoes.jpg", TargetPage: "https://shop.example/shoes",
	}, ads[0])
	assert.Equal(t, 7.0, ads[1].CTR)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallCount.WithLabelValues("GetAds", "success")))
}

func TestGetAds_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "not logged in"}`))
	}))
	defer srv.Close()

	repo, m := newRepo(t, srv.URL, "")

	ads, err := repo.GetAds(context.Background())
	assert.Error(t, err)
	assert.Nil(t, ads)
	assert.Contains(t, err.Error(), "failed to decode ads")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallCount.WithLabelValues("GetAds", "parse_error")))
}

func TestGetAds_MalformedBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "trailing garbage", body: `[{"id": 1}] trailing`},
		{name: "second value", body: `[] []`},
		{name: "object", body: `{"id": 1}`},
		{name: "empty body", body: ``},
		{name: "null", body: `null`, wantErr: ErrNotAList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			repo, m := newRepo(t, srv.URL, "")

			ads, err := repo.GetAds(context.Background())
			require.Error(t, err)
			assert.Nil(t, ads)
			assert.Contains(t, err.Error(), "failed to decode ads")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, 1.0, testutil.ToFloat64(m.CallCount.WithLabelValues("GetAds", "parse_error")))
		})
	}
}

func TestGetAds_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(" [] \n"))
	}))
	defer srv.Close()

	repo, _ := newRepo(t, srv.URL, "")

	ads, err := repo.GetAds(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ads)
	assert.Empty(t, ads)
}

func TestGetAds_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo, _ := newRepo(t, url, "")

	_, err := repo.GetAds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch ads")
}

func TestDislike(t *testing.T) {
	var gotMethod, gotPath, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if c, err := r.Cookie(SessionCookieName); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	repo, _ := newRepo(t, srv.URL, "abc123")

	require.NoError(t, repo.Dislike(context.Background(), 17))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/dislike/17", gotPath)
	assert.Equal(t, "abc123", gotCookie)
}

func TestDislike_StatusIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo, _ := newRepo(t, srv.URL, "")

	assert.NoError(t, repo.Dislike(context.Background(), 3))
}

func TestDislike_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo, m := newRepo(t, url, "")

	err := repo.Dislike(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post dislike")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallCount.WithLabelValues("Dislike", "error")))
}

func TestNoCookieWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(SessionCookieName)
		assert.ErrorIs(t, err, http.ErrNoCookie)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo, _ := newRepo(t, srv.URL, "")

	ads, err := repo.GetAds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ads)
}
