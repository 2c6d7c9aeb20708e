package topics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	tax := Default()
	if len(tax.Topics) == 0 {
		t.Fatalf("default taxonomy must not be empty")
	}
	if tax.Topics[0].Name != "Polity & Governance" {
		t.Errorf("taxonomy order changed: first topic is %q", tax.Topics[0].Name)
	}
	for _, topic := range tax.Topics {
		if len(topic.Keywords) == 0 {
			t.Errorf("topic %q has no keywords", topic.Name)
		}
	}
}

func TestAllKeywords_FlattenedAndLowercase(t *testing.T) {
	tax := Taxonomy{Topics: []Topic{
		{Name: "A", Keywords: []string{" GST ", "RBI"}},
		{Name: "B", Keywords: []string{"climate", ""}},
	}}
	all := tax.AllKeywords()
	if len(all) != 3 {
		t.Fatalf("expected 3 keywords, got %v", all)
	}
	for _, k := range all {
		if k != strings.ToLower(strings.TrimSpace(k)) {
			t.Errorf("keyword not normalized: %q", k)
		}
	}
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	tax, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(tax.Topics) != len(Default().Topics) {
		t.Errorf("expected default taxonomy, got %d topics", len(tax.Topics))
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	data := `topics:
  - name: Economy
    keywords: [gst, rbi]
  - name: Ecology
    keywords: [wetland]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tax.Topics) != 2 || tax.Topics[0].Name != "Economy" || tax.Topics[1].Name != "Ecology" {
		t.Errorf("unexpected taxonomy: %+v", tax.Topics)
	}
	names := tax.Names()
	if len(names) != 2 || names[0] != "Economy" {
		t.Errorf("names: got %v", names)
	}
}
