// Package topics holds the subject taxonomy used for relevance filtering
// and classification. Topic order matters: classification walks the list
// in order and keeps the first matches.
package topics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackLabel is assigned when an article matches no topic keywords.
const FallbackLabel = "General"

type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type Taxonomy struct {
	Topics []Topic
}

type taxonomyFile struct {
	Topics []Topic `yaml:"topics"`
}

// Default returns the built-in UPSC subject taxonomy.
func Default() Taxonomy {
	return Taxonomy{Topics: []Topic{
		{
			Name: "Polity & Governance",
			Keywords: []string{
				"parliament", "lok sabha", "rajya sabha", "bill", "constitution",
				"supreme court", "high court", "ordinance", "amendment", "judiciary",
				"election commission", "governor", "cabinet", "ministry", "policy",
				"panchayat", "federalism", "governance",
			},
		},
		{
			Name: "Economy",
			Keywords: []string{
				"gst", "rbi", "reserve bank", "inflation", "budget", "fiscal",
				"tax", "gdp", "economy", "sebi", "repo rate", "monetary",
				"trade deficit", "export", "import", "disinvestment", "niti aayog",
				"banking", "rupee",
			},
		},
		{
			Name: "International Relations",
			Keywords: []string{
				"united nations", "bilateral", "summit", "treaty", "diplomacy",
				"foreign minister", "g20", "brics", "quad", "saarc", "asean",
				"border talks", "embassy", "visa pact", "indo-pacific",
			},
		},
		{
			Name: "Environment & Ecology",
			Keywords: []string{
				"climate", "pollution", "wildlife", "forest", "biodiversity",
				"emission", "tiger reserve", "sanctuary", "wetland", "ganga",
				"renewable", "solar", "monsoon", "conservation",
			},
		},
		{
			Name: "Science & Technology",
			Keywords: []string{
				"isro", "satellite", "chandrayaan", "gaganyaan", "spacecraft",
				"artificial intelligence", "semiconductor", "quantum", "vaccine",
				"genome", "drdo", "nuclear", "research", "technology",
			},
		},
		{
			Name: "Defence & Security",
			Keywords: []string{
				"army", "navy", "air force", "missile", "defence", "terrorism",
				"naxal", "insurgency", "ceasefire", "military exercise",
				"border security", "coast guard",
			},
		},
		{
			Name: "Social Issues",
			Keywords: []string{
				"education", "health scheme", "welfare", "poverty", "malnutrition",
				"women", "child", "tribal", "reservation", "caste", "literacy",
				"employment scheme", "pension", "anganwadi",
			},
		},
		{
			Name: "History & Culture",
			Keywords: []string{
				"heritage", "archaeological", "temple", "monument", "unesco",
				"culture", "festival", "classical", "manuscript", "museum",
			},
		},
	}}
}

// Load reads the taxonomy from a YAML file, falling back to the built-in
// taxonomy when the file is absent.
func Load(path string) (Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Taxonomy{}, err
	}
	defer f.Close()

	var file taxonomyFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&file); err != nil {
		return Taxonomy{}, fmt.Errorf("parse topics config %s: %w", path, err)
	}
	if len(file.Topics) == 0 {
		return Default(), nil
	}
	for i, t := range file.Topics {
		if t.Name == "" {
			return Taxonomy{}, fmt.Errorf("topics config %s: entry %d has no name", path, i)
		}
	}
	return Taxonomy{Topics: file.Topics}, nil
}

// Names lists all topic names in taxonomy order.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t.Topics))
	for _, topic := range t.Topics {
		names = append(names, topic.Name)
	}
	return names
}

// AllKeywords returns the flattened, lower-cased keyword set across all
// topics. Used by the relevance filter.
func (t Taxonomy) AllKeywords() []string {
	var all []string
	for _, topic := range t.Topics {
		for _, k := range topic.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				all = append(all, k)
			}
		}
	}
	return all
}
