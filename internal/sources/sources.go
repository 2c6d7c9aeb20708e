// Package sources holds the static catalog of news publications the
// aggregator pulls from. The catalog is loaded once at startup and never
// mutated afterwards.
package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one publication with its feed endpoints.
type Source struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	FullName string   `yaml:"fullName"`
	Color    string   `yaml:"color"`
	Feeds    []string `yaml:"feeds"`
}

// PublicSource is the catalog entry exposed in the API response.
// Feed URLs are deliberately not part of it.
type PublicSource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Color    string `json:"color"`
}

type registryFile struct {
	Sources []Source `yaml:"sources"`
}

// Defaults returns the built-in source catalog.
func Defaults() []Source {
	return []Source{
		{
			ID:       "thehindu",
			Name:     "The Hindu",
			FullName: "The Hindu",
			Color:    "#12416a",
			Feeds: []string{
				"https://www.thehindu.com/news/national/feeder/default.rss",
				"https://www.thehindu.com/business/Economy/feeder/default.rss",
			},
		},
		{
			ID:       "indianexpress",
			Name:     "Indian Express",
			FullName: "The Indian Express",
			Color:    "#8b1d1d",
			Feeds: []string{
				"https://indianexpress.com/section/india/feed/",
				"https://indianexpress.com/section/explained/feed/",
			},
		},
		{
			ID:       "timesofindia",
			Name:     "TOI",
			FullName: "The Times of India",
			Color:    "#b02e2e",
			Feeds: []string{
				"https://timesofindia.indiatimes.com/rssfeeds/-2128936835.cms",
			},
		},
		{
			ID:       "hindustantimes",
			Name:     "HT",
			FullName: "Hindustan Times",
			Color:    "#00b1cd",
			Feeds: []string{
				"https://www.hindustantimes.com/feeds/rss/india-news/rssfeed.xml",
			},
		},
		{
			ID:       "livemint",
			Name:     "Mint",
			FullName: "Livemint",
			Color:    "#f99d1c",
			Feeds: []string{
				"https://www.livemint.com/rss/news",
				"https://www.livemint.com/rss/economy",
			},
		},
		{
			ID:       "ddnews",
			Name:     "DD News",
			FullName: "Doordarshan News",
			Color:    "#cc5500",
			Feeds: []string{
				"https://ddnews.gov.in/en/feed/",
			},
		},
	}
}

// Load reads the source catalog from a YAML file. A missing file is not an
// error: the built-in catalog is used instead.
func Load(path string) ([]Source, error) {
	if path == "" {
		return Defaults(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, err
	}
	defer f.Close()

	var file registryFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse sources config %s: %w", path, err)
	}
	if len(file.Sources) == 0 {
		return Defaults(), nil
	}
	for i, s := range file.Sources {
		if s.ID == "" {
			return nil, fmt.Errorf("sources config %s: entry %d has no id", path, i)
		}
	}
	return file.Sources, nil
}

// Public strips feed URLs from the catalog for the API response.
func Public(list []Source) []PublicSource {
	out := make([]PublicSource, 0, len(list))
	for _, s := range list {
		out = append(out, PublicSource{ID: s.ID, Name: s.Name, FullName: s.FullName, Color: s.Color})
	}
	return out
}
