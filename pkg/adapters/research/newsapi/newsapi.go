// Package newsapi implements topic research against NewsAPI.
//
// Research never fails: a missing key, an API error or an empty result all
// fall back to the internal topic pool.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/shortcast/internal/application/fallback"
	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

// DefaultBaseURL is the NewsAPI endpoint searched for trending articles
const DefaultBaseURL = "https://newsapi.org/v2/everything"

// Query is the keyword query sent to NewsAPI
var Query = strings.Join([]string{"AI", "artificial intelligence", "robotics", "quantum computing", "future tech"}, " OR ")

// maxSupporting is the number of articles after the primary one kept as sources
const maxSupporting = 3

// Config configures the researcher
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// Rand drives fallback selection. Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Researcher picks today's topic
type Researcher struct {
	apiKey  string
	baseURL string
	client  *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResearcher creates a researcher
func NewResearcher(cfg Config) *Researcher {
	r := &Researcher{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		rng:     cfg.Rand,
	}
	if r.baseURL == "" {
		r.baseURL = DefaultBaseURL
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: 30 * time.Second}
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r
}

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

// Research returns a trending topic, or a fallback topic when none is available
func (r *Researcher) Research(ctx context.Context, rc *domain.RunContext) (*domain.TopicIdea, error) {
	if r.apiKey == "" {
		rc.Logger.Warn("news API key missing, falling back to internal topic set")
		return r.fallback(), nil
	}

	articles, err := r.search(ctx)
	if err != nil {
		rc.Logger.Warn("trending research failed", zap.Error(err))
		return r.fallback(), nil
	}
	if len(articles) == 0 {
		rc.Logger.Warn("no trending topics returned, using fallback list")
		return r.fallback(), nil
	}

	topic := buildTopic(articles, rc.Config.VideoStyle)
	rc.Logger.Info("trending topic selected",
		zap.String("title", topic.Title),
		zap.Int("sources", len(topic.Sources)))
	return topic, nil
}

func (r *Researcher) search(ctx context.Context) ([]article, error) {
	params := url.Values{}
	params.Set("q", Query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API error %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode news API response: %w", err)
	}

	out := make([]article, 0, len(body.Articles))
	for _, a := range body.Articles {
		if strings.TrimSpace(a.Title) != "" {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Researcher) fallback() *domain.TopicIdea {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fallback.PickTopic(r.rng, nil)
}

func buildTopic(articles []article, style domain.VideoStyle) *domain.TopicIdea {
	primary := articles[0]

	summary := primary.Description
	if summary == "" {
		summary = "Latest AI headline summarized."
	}

	sources := []domain.Source{{Title: nameOr(primary, "Primary Source"), URL: primary.URL}}
	for i := 1; i < len(articles) && i <= maxSupporting; i++ {
		sources = append(sources, domain.Source{
			Title: nameOr(articles[i], "Supporting Source"),
			URL:   articles[i].URL,
		})
	}

	return &domain.TopicIdea{
		Title:   primary.Title,
		Summary: summary,
		Angle: fmt.Sprintf("Deliver a futurist hype tone that fits the %s aesthetic. "+
			"Highlight why this matters right now and give a forward-looking twist.", style),
		Sources:    sources,
		Provenance: domain.TopicProvenanceTrending,
	}
}

func nameOr(a article, def string) string {
	if a.Source.Name == "" {
		return def
	}
	return a.Source.Name
}
