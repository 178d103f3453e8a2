// Package scraper reads the IMDb top chart and title pages.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

const (
	DefaultChartURL = "https://www.imdb.com/chart/top/"
	DefaultLimit    = 100

	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	unknownTitle       = "Unknown Title"
	unknownDirector    = "Unknown"
	missingDescription = "No description available."

	// per-page allowance on top of pacing when estimating a full run
	pageAllowance = 3 * time.Second
	fetchTimeout  = 30 * time.Second
)

var (
	yearPattern   = regexp.MustCompile(`\d{4}`)
	ratingPattern = regexp.MustCompile(`\d+\.\d+`)
	titleIDPath   = regexp.MustCompile(`/title/(tt\d+)`)
)

// ParseError reports a page that could not be turned into a movie.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
}

type Options struct {
	ChartURL string
	Limit    int
	// RequestsPerSecond paces title page fetches; 0 disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Now               func() time.Time
}

type Scraper struct {
	chartURL string
	limit    int
	limiter  *rate.Limiter
	client   *http.Client
	now      func() time.Time
}

func New(opts Options) *Scraper {
	s := &Scraper{
		chartURL: opts.ChartURL,
		limit:    opts.Limit,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		client:   opts.HTTPClient,
		now:      opts.Now,
	}
	if s.chartURL == "" {
		s.chartURL = DefaultChartURL
	}
	if s.limit <= 0 {
		s.limit = DefaultLimit
	}
	if opts.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: fetchTimeout}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Budget is an upper bound on how long TopMovies may take: the chart fetch
// plus one pacing interval and one page fetch per title.
func (s *Scraper) Budget() time.Duration {
	var pace time.Duration
	if lim := s.limiter.Limit(); lim != rate.Inf && lim > 0 {
		pace = time.Duration(float64(time.Second) / float64(lim))
	}
	chart := s.client.Timeout
	if chart <= 0 {
		chart = fetchTimeout
	}
	return chart + time.Duration(s.limit)*(pace+pageAllowance)
}

// TopMovies scrapes the chart and every title on it. Titles that fail to
// load or parse are skipped; an unreadable chart is an error.
func (s *Scraper) TopMovies(ctx context.Context) ([]domain.StoredMovie, error) {
	start := s.now()

	body, err := s.fetch(ctx, s.chartURL)
	if err != nil {
		return nil, fmt.Errorf("fetch chart: %w", err)
	}
	links, err := ParseChart(body, s.chartURL, s.limit)
	body.Close()
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "scraping titles", "count", len(links))

	movies := make([]domain.StoredMovie, 0, len(links))
	for i, link := range links {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		m, err := s.title(ctx, link)
		if err != nil {
			slog.WarnContext(ctx, "skipping title", "index", i+1, "url", link, "error", err)
			continue
		}
		movies = append(movies, m)
	}

	slog.InfoContext(ctx, "scrape finished", "movies", len(movies), "duration", s.now().Sub(start))
	return movies, nil
}

func (s *Scraper) title(ctx context.Context, link string) (domain.StoredMovie, error) {
	body, err := s.fetch(ctx, link)
	if err != nil {
		return domain.StoredMovie{}, err
	}
	defer body.Close()

	m, err := ParseTitle(body, link)
	if err != nil {
		return domain.StoredMovie{}, err
	}
	m.LastUpdated = s.now().UTC()
	return m, nil
}

func (s *Scraper) fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", link, resp.StatusCode)
	}
	return resp.Body, nil
}

// ParseChart returns the absolute title page URLs on a chart page, in chart
// order, without duplicates, at most limit of them.
func ParseChart(r io.Reader, chartURL string, limit int) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{URL: chartURL, Reason: err.Error()}
	}
	base, err := url.Parse(chartURL)
	if err != nil {
		return nil, &ParseError{URL: chartURL, Reason: err.Error()}
	}

	anchors := findAll(doc, withClass("a", "ipc-title-link-wrapper"))
	if len(anchors) == 0 {
		anchors = findAll(doc, withTestID("a", "title-details-link"))
	}

	seen := map[string]bool{}
	var links []string
	for _, a := range anchors {
		href := attr(a, "href")
		m := titleIDPath.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		abs.RawQuery = ""
		links = append(links, abs.String())
		if len(links) == limit {
			break
		}
	}

	if len(links) == 0 {
		return nil, &ParseError{URL: chartURL, Reason: "no titles found"}
	}
	return links, nil
}

// ParseTitle extracts a movie from a title page.
func ParseTitle(r io.Reader, titleURL string) (domain.StoredMovie, error) {
	id := titleIDPath.FindStringSubmatch(titleURL)
	if id == nil {
		return domain.StoredMovie{}, &ParseError{URL: titleURL, Reason: "no title id in url"}
	}
	doc, err := html.Parse(r)
	if err != nil {
		return domain.StoredMovie{}, &ParseError{URL: titleURL, Reason: err.Error()}
	}

	m := domain.StoredMovie{IMDbID: id[1]}
	m.Title = orDefault(text(findFirst(doc, withTestID("h1", "hero__pageTitle"))), unknownTitle)
	m.Year = parseYear(doc)
	m.Rating = parseRating(doc)
	m.Director = parseDirector(doc)
	m.Genre = parseGenres(doc)
	m.Description = parseDescription(doc)
	m.PosterURL = parsePoster(doc)
	return m, nil
}

func parseYear(doc *html.Node) int {
	var candidates []string
	if meta := findFirst(doc, withTestID("ul", "hero-title-block__metadata")); meta != nil {
		for _, li := range findAll(meta, element("li")) {
			candidates = append(candidates, text(li))
		}
	}
	candidates = append(candidates, text(findFirst(doc, withTestID("", "title-details-releasedate"))))

	for _, c := range candidates {
		if y := yearPattern.FindString(c); y != "" {
			year, _ := strconv.Atoi(y)
			return year
		}
	}
	return 0
}

func parseRating(doc *html.Node) float64 {
	el := findFirst(doc, withTestID("div", "hero-rating-bar__aggregate-rating__score"))
	if el == nil {
		el = findFirst(doc, withClass("span", "sc-bde20123-1"))
	}
	v := ratingPattern.FindString(text(el))
	if v == "" {
		return 0
	}
	rating, _ := strconv.ParseFloat(v, 64)
	return rating
}

func parseDirector(doc *html.Node) string {
	el := findFirst(doc, withClass("a", "ipc-metadata-list-item__list-content-item"))
	if el == nil {
		el = within(doc, withTestID("", "title-pc-principal-credit"), element("a"))
	}
	return orDefault(text(el), unknownDirector)
}

func parseGenres(doc *html.Node) []string {
	chips := findAll(doc, withClass("a", "ipc-chip"))
	if len(chips) == 0 {
		if container := findFirst(doc, withTestID("", "genres")); container != nil {
			chips = findAll(container, element("a"))
		}
	}
	genres := make([]string, 0, len(chips))
	for _, c := range chips {
		if g := text(c); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func parseDescription(doc *html.Node) string {
	for _, id := range []string{"plot-xl", "plot-l", "storyline-plot-summary"} {
		if d := text(findFirst(doc, withTestID("", id))); d != "" {
			return d
		}
	}
	return missingDescription
}

func parsePoster(doc *html.Node) string {
	img := within(doc, withTestID("div", "hero-media__poster"), element("img"))
	if img == nil {
		img = findFirst(doc, withClass("img", "ipc-image"))
	}
	if img == nil {
		return ""
	}
	return attr(img, "src")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
