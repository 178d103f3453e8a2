package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-reviews/internal/cache"
	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/actuallystonmai/movie-reviews/internal/handler"
	"github.com/actuallystonmai/movie-reviews/internal/scraper"
	"github.com/actuallystonmai/movie-reviews/internal/service"
	"github.com/actuallystonmai/movie-reviews/internal/service/servicetest"
)

const origin = "http://localhost:8080"

// newIMDb serves a chart of n titles and a minimal page for each.
func newIMDb(t *testing.T, n int) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/chart/top/", func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString("<html><body><ul>")
		for i := 1; i <= n; i++ {
			fmt.Fprintf(&b, `<li><a class="ipc-title-link-wrapper" href="/title/tt%07d/">%d</a></li>`, i, i)
		}
		b.WriteString("</ul></body></html>")
		w.Write([]byte(b.String()))
	})
	r.Get("/title/{id}/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><h1 data-testid="hero__pageTitle">Movie %s</h1></body></html>`, chi.URLParam(r, "id"))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, store *servicetest.Store, src service.MovieSource, scrapeTimeout time.Duration) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := service.NewService(store, cache.NewCache(client, time.Minute), src, scrapeTimeout)
	return Setup(handler.NewHandler(svc), origin)
}

func shortRequestTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	old := requestTimeout
	requestTimeout = d
	t.Cleanup(func() { requestTimeout = old })
}

func TestStaticRoutes(t *testing.T) {
	r := newTestRouter(t, servicetest.NewStore(), scraper.New(scraper.Options{}), time.Minute)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "Movie Reviews API is running"},
		{"/health", http.StatusOK, `"ok"`},
		{"/api/nope", http.StatusNotFound, "Endpoint not found"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, tt.path)
		assert.Contains(t, rec.Body.String(), tt.body, tt.path)
	}
}

func TestDemoRouteNotCapturedByMovieID(t *testing.T) {
	r := newTestRouter(t, servicetest.NewStore(), scraper.New(scraper.Options{}), time.Minute)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/demo", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Shawshank Redemption")
}

func TestColdScrapeOutlastsRequestTimeout(t *testing.T) {
	shortRequestTimeout(t, 100*time.Millisecond)

	imdb := newIMDb(t, 6)
	src := scraper.New(scraper.Options{
		ChartURL:          imdb.URL + "/chart/top/",
		Limit:             6,
		RequestsPerSecond: 20,
	})
	r := newTestRouter(t, servicetest.NewStore(), src, src.Budget())

	start := time.Now()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/top-100", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Greater(t, time.Since(start), requestTimeout)

	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movies))
	assert.Len(t, movies, 6)
}

func TestRefreshOutlastsRequestTimeout(t *testing.T) {
	shortRequestTimeout(t, 100*time.Millisecond)

	imdb := newIMDb(t, 4)
	src := scraper.New(scraper.Options{
		ChartURL:          imdb.URL + "/chart/top/",
		Limit:             4,
		RequestsPerSecond: 15,
	})
	r := newTestRouter(t, servicetest.NewStore(), src, src.Budget())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Movie cache refreshed successfully","count":4}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, servicetest.NewStore(), scraper.New(scraper.Options{}), time.Minute)

	req := httptest.NewRequest(http.MethodOptions, "/api/movies/1/review", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
}
