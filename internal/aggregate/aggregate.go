// Package aggregate fans out one fetch per feed endpoint, waits for every
// outcome, and assembles the merged, deduplicated, sorted response.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/upscsamachar/newsfeed/internal/feed"
	"github.com/upscsamachar/newsfeed/internal/logger"
	"github.com/upscsamachar/newsfeed/internal/metrics"
	"github.com/upscsamachar/newsfeed/internal/sources"
	"github.com/upscsamachar/newsfeed/internal/topics"
)

const dedupKeyLen = 60

// Fetcher retrieves one raw feed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Parser normalizes one raw feed document for a source.
type Parser interface {
	Parse(raw string, src sources.Source, tax topics.Taxonomy) []feed.Item
}

// Response is the payload served at the HTTP boundary.
type Response struct {
	Articles     []feed.Item            `json:"articles"`
	Grouped      map[string][]feed.Item `json:"grouped"`
	TopicGrouped map[string][]feed.Item `json:"topicGrouped"`
	Sources      []sources.PublicSource `json:"sources"`
	Topics       []string               `json:"topics"`
	LastUpdated  time.Time              `json:"lastUpdated"`
	Total        int                    `json:"total"`
}

type Aggregator struct {
	sources     []sources.Source
	taxonomy    topics.Taxonomy
	fetcher     Fetcher
	parser      Parser
	maxArticles int
}

func New(srcs []sources.Source, tax topics.Taxonomy, fetcher Fetcher, parser Parser, maxArticles int) *Aggregator {
	return &Aggregator{
		sources:     srcs,
		taxonomy:    tax,
		fetcher:     fetcher,
		parser:      parser,
		maxArticles: maxArticles,
	}
}

// Run fetches every (source, endpoint) pair concurrently and builds the
// response. A failed endpoint contributes zero items; it never delays or
// fails the others beyond its own timeout.
func (a *Aggregator) Run(ctx context.Context) *Response {
	start := time.Now()

	results := make(chan []feed.Item)
	var wg sync.WaitGroup

	for _, src := range a.sources {
		for _, url := range src.Feeds {
			wg.Add(1)
			go func(src sources.Source, url string) {
				defer wg.Done()
				raw, err := a.fetcher.Fetch(ctx, url)
				if err != nil {
					logger.Warn("feed fetch failed", "source", src.ID, "url", url, "error", err)
					metrics.Global.IncrementFeedFailures()
					results <- nil
					return
				}
				metrics.Global.IncrementFeedsFetched()
				items := a.parser.Parse(raw, src, a.taxonomy)
				metrics.Global.AddItemsParsed(len(items))
				results <- items
			}(src, url)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Merge in fetch-completion order; dedup keeps the first item seen
	// for a key, so completion order is the observation order.
	var merged []feed.Item
	for items := range results {
		merged = append(merged, items...)
	}

	deduped := dedup(merged)
	metrics.Global.AddDuplicatesFiltered(len(merged) - len(deduped))

	// Stable sort keeps completion order for equal timestamps.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PubDate.After(deduped[j].PubDate)
	})

	total := len(deduped)
	capped := deduped
	if len(capped) > a.maxArticles {
		capped = capped[:a.maxArticles]
	}

	resp := &Response{
		Articles:     capped,
		Grouped:      a.groupBySource(capped),
		TopicGrouped: groupByTopic(capped),
		Sources:      sources.Public(a.sources),
		Topics:       a.taxonomy.Names(),
		LastUpdated:  time.Now().UTC(),
		Total:        total,
	}
	if resp.Articles == nil {
		resp.Articles = []feed.Item{}
	}

	metrics.Global.RecordAggregation(time.Since(start))
	logger.Info("aggregation complete",
		"merged", len(merged), "deduped", total, "served", len(capped),
		"elapsed", time.Since(start))
	return resp
}

// dedupKey fingerprints a title for cross-source duplicate detection:
// case-folded, non-alphanumerics removed, truncated to 60 characters.
func dedupKey(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > dedupKeyLen {
		runes = runes[:dedupKeyLen]
	}
	return string(runes)
}

// dedup drops items whose title fingerprint was already observed, keeping
// the earliest occurrence.
func dedup(items []feed.Item) []feed.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.Item, 0, len(items))
	for _, item := range items {
		key := dedupKey(item.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// groupBySource builds one list per catalog source. Sources with no items
// this cycle get an empty list, not an absent key.
func (a *Aggregator) groupBySource(items []feed.Item) map[string][]feed.Item {
	grouped := make(map[string][]feed.Item, len(a.sources))
	for _, src := range a.sources {
		grouped[src.ID] = []feed.Item{}
	}
	for _, item := range items {
		grouped[item.Source] = append(grouped[item.Source], item)
	}
	return grouped
}

// groupByTopic builds lists only for topics that received at least one
// item. An item with several labels lands in several groups.
func groupByTopic(items []feed.Item) map[string][]feed.Item {
	grouped := make(map[string][]feed.Item)
	for _, item := range items {
		for _, topic := range item.Topics {
			grouped[topic] = append(grouped[topic], item)
		}
	}
	return grouped
}
