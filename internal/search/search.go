// Package search proxies free-text queries to the news provider and normalizes results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/pkg/logger"
	"github.com/newsbook/newsbook-api/pkg/metrics"
)

// Defaults substituted for fields the provider omits.
const (
	DefaultTitle  = "Untitled"
	DefaultSource = "Web"
	DefaultLink   = "#"
	DefaultImage  = "https://picsum.photos/600/400"

	// DemoSize is the number of items returned when no provider key is configured.
	DemoSize = 6
)

// Item is the normalized shape of one search result.
type Item struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Date   string `json:"date"`
	Source string `json:"source"`
	Link   string `json:"link"`
	Image  string `json:"image"`
}

type Result struct {
	Query string `json:"query"`
	Total int    `json:"total"`
	Items []Item `json:"items"`
}

// providerArticle mirrors one entry of the provider's "articles" array.
type providerArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type providerResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Articles []providerArticle `json:"articles"`
}

// Service forwards queries to the provider, or serves demo data without an API key.
type Service struct {
	cfg    config.NewsConfig
	client *http.Client
	now    func() time.Time
}

func NewService(cfg config.NewsConfig) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{cfg: cfg, client: &http.Client{Timeout: timeout}, now: time.Now}
}

// Demo reports whether results are served from the fixed demo set.
func (s *Service) Demo() bool { return s.cfg.APIKey == "" }

// Search runs q against the provider. An empty query is a BadRequest; provider failures
// are BadGateway and never retried.
func (s *Service) Search(ctx context.Context, q string) (*Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.BadRequest("Missing query param q")
	}
	if s.Demo() {
		metrics.SearchUpstream.WithLabelValues("demo").Inc()
		return s.demo(q), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(q), nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.SearchUpstream.WithLabelValues("transport_error").Inc()
		logger.Warnf("news provider request failed: %v", err)
		return nil, apperr.BadGateway(0, "News provider unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		metrics.SearchUpstream.WithLabelValues("transport_error").Inc()
		return nil, apperr.BadGateway(resp.StatusCode, "News provider response unreadable", err)
	}
	var pr providerResponse
	decodeErr := json.Unmarshal(body, &pr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.SearchUpstream.WithLabelValues("provider_error").Inc()
		msg := pr.Message
		if msg == "" {
			msg = "News API error"
		}
		logger.Warnf("news provider returned %d: %s", resp.StatusCode, msg)
		return nil, apperr.BadGateway(resp.StatusCode, fmt.Sprintf("News provider error (%d): %s", resp.StatusCode, msg), nil)
	}
	if decodeErr != nil {
		metrics.SearchUpstream.WithLabelValues("provider_error").Inc()
		return nil, apperr.BadGateway(resp.StatusCode, "News provider returned malformed JSON", decodeErr)
	}

	metrics.SearchUpstream.WithLabelValues("ok").Inc()
	items := make([]Item, 0, len(pr.Articles))
	for _, a := range pr.Articles {
		items = append(items, normalize(a))
	}
	return &Result{Query: q, Total: len(items), Items: items}, nil
}

func (s *Service) requestURL(q string) string {
	v := url.Values{}
	v.Set("q", q)
	v.Set("language", s.cfg.Language)
	v.Set("pageSize", strconv.Itoa(s.cfg.PageSize))
	v.Set("sortBy", "publishedAt")
	sep := "?"
	if strings.Contains(s.cfg.BaseURL, "?") {
		sep = "&"
	}
	return s.cfg.BaseURL + sep + v.Encode()
}

func normalize(a providerArticle) Item {
	it := Item{
		Title:  a.Title,
		Text:   a.Description,
		Date:   a.PublishedAt,
		Source: a.Source.Name,
		Link:   a.URL,
		Image:  a.URLToImage,
	}
	if it.Title == "" {
		it.Title = DefaultTitle
	}
	if len(it.Date) > 10 {
		it.Date = it.Date[:10]
	}
	if it.Source == "" {
		it.Source = DefaultSource
	}
	if it.Link == "" {
		it.Link = DefaultLink
	}
	if it.Image == "" {
		it.Image = DefaultImage
	}
	return it
}

// demo builds the fixed fallback set; the query only appears as a title label.
func (s *Service) demo(q string) *Result {
	today := s.now().UTC().Format("2006-01-02")
	items := make([]Item, DemoSize)
	for i := range items {
		items[i] = Item{
			Title:  fmt.Sprintf("%s: headline #%d", q, i+1),
			Text:   "Demo article...",
			Date:   today,
			Source: "Demo",
			Link:   "https://example.com",
			Image:  DefaultImage,
		}
	}
	return &Result{Query: q, Total: len(items), Items: items}
}
