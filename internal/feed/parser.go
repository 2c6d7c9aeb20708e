// Package feed turns a raw syndication document into normalized items.
// Both RSS (channel/item) and Atom (feed/entry) shapes are accepted; a
// document that parses as neither yields an empty list, matching how a
// failed fetch is treated.
package feed

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/upscsamachar/newsfeed/internal/classify"
	"github.com/upscsamachar/newsfeed/internal/logger"
	"github.com/upscsamachar/newsfeed/internal/sources"
	"github.com/upscsamachar/newsfeed/internal/topics"
)

type Parser struct {
	gf        *gofeed.Parser
	maxItems  int
	descMax   int
	maxTopics int
}

func NewParser(maxItems, descMax, maxTopics int) *Parser {
	return &Parser{
		gf:        gofeed.NewParser(),
		maxItems:  maxItems,
		descMax:   descMax,
		maxTopics: maxTopics,
	}
}

// Parse normalizes one raw feed document for a source. It never panics
// past the call boundary and never returns an error: a malformed document
// contributes zero items, same as a failed fetch.
func (p *Parser) Parse(raw string, src sources.Source, tax topics.Taxonomy) (items []Item) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("feed parse panic recovered", "source", src.ID, "panic", r)
			items = nil
		}
	}()

	parsed, err := p.gf.ParseString(raw)
	if err != nil {
		logger.Warn("feed parse failed", "source", src.ID, "error", err)
		return nil
	}

	for _, entry := range parsed.Items {
		if len(items) >= p.maxItems {
			break
		}

		title := cleanText(entry.Title)
		if title == "" {
			continue
		}
		description := truncateRunes(cleanText(entry.Description), p.descMax)

		if !classify.Relevant(title, description, tax) {
			continue
		}

		items = append(items, Item{
			ID:             itemID(entry.Link, title),
			Title:          title,
			Description:    description,
			Link:           strings.TrimSpace(entry.Link),
			PubDate:        publishTime(entry),
			Source:         src.ID,
			SourceName:     src.Name,
			SourceFullName: src.FullName,
			SourceColor:    src.Color,
			Category:       category(entry),
			Topics:         classify.Assign(title, description, tax, p.maxTopics),
			ImageURL:       imageURL(entry),
		})
	}
	return items
}

// itemID derives the stable identifier from the link, falling back to the
// title when the entry has no link.
func itemID(link, title string) string {
	basis := strings.TrimSpace(link)
	if basis == "" {
		basis = title
	}
	h := sha1.Sum([]byte(basis))
	return hex.EncodeToString(h[:])
}

// publishTime resolves the publish instant from the alternatives gofeed
// exposes, defaulting to now, and normalizes to UTC.
func publishTime(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC()
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC()
	}
	if entry.Published != "" {
		if t, err := time.Parse(time.RFC1123Z, entry.Published); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.RFC1123, entry.Published); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func category(entry *gofeed.Item) string {
	if len(entry.Categories) == 0 {
		return ""
	}
	return strings.TrimSpace(entry.Categories[0])
}

// imageURL checks the alternative locations feeds put article images in:
// the item image, media RSS extensions, then image-typed enclosures.
func imageURL(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	if media, ok := entry.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}
	for _, enc := range entry.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// cleanText strips markup from a feed field and collapses whitespace.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
