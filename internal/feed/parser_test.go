package feed

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/upscsamachar/newsfeed/internal/sources"
	"github.com/upscsamachar/newsfeed/internal/topics"
)

var testSource = sources.Source{
	ID: "thehindu", Name: "The Hindu", FullName: "The Hindu", Color: "#12416a",
}

func newTestParser() *Parser {
	return NewParser(20, 500, 3)
}

func rssDoc(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel><title>National</title><link>https://example.org</link>` + items + `</channel></rss>`
}

func TestParse_RSSChannelItem(t *testing.T) {
	doc := rssDoc(`<item>
		<title>Parliament passes new bill on GST</title>
		<description>reform</description>
		<link>https://example.org/gst-bill</link>
		<pubDate>Mon, 05 Feb 2024 10:30:00 +0530</pubDate>
		<category>National</category>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Title != "Parliament passes new bill on GST" {
		t.Errorf("title: got %q", item.Title)
	}
	if item.Source != "thehindu" || item.SourceName != "The Hindu" || item.SourceColor != "#12416a" {
		t.Errorf("source fields not carried over: %+v", item)
	}
	if item.Category != "National" {
		t.Errorf("category: got %q", item.Category)
	}
	if item.ID == "" {
		t.Errorf("expected derived id")
	}
	want := time.Date(2024, 2, 5, 5, 0, 0, 0, time.UTC)
	if !item.PubDate.Equal(want) {
		t.Errorf("pubDate: got %v, want %v", item.PubDate, want)
	}
	if len(item.Topics) != 2 || item.Topics[0] != "Polity & Governance" || item.Topics[1] != "Economy" {
		t.Errorf("topics: got %v", item.Topics)
	}
}

func TestParse_AtomFeedEntry(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Explained</title>
  <entry>
    <title>Supreme Court hears plea on reservation policy</title>
    <summary>The bench reserved its verdict.</summary>
    <link href="https://example.org/sc-plea"/>
    <updated>2024-02-05T09:00:00Z</updated>
    <id>urn:1</id>
  </entry>
</feed>`

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Link != "https://example.org/sc-plea" {
		t.Errorf("link from attribute reference: got %q", item.Link)
	}
	if item.Description != "The bench reserved its verdict." {
		t.Errorf("description from summary: got %q", item.Description)
	}
	want := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)
	if !item.PubDate.Equal(want) {
		t.Errorf("pubDate from updated: got %v, want %v", item.PubDate, want)
	}
}

func TestParse_StripsMarkupAndCollapsesWhitespace(t *testing.T) {
	doc := rssDoc(`<item>
		<title>&lt;b&gt;Parliament&lt;/b&gt;   session  &amp;amp; GST   update</title>
		<description>&lt;p&gt;First para.&lt;/p&gt;&lt;p&gt;Second&lt;br/&gt;para.&lt;/p&gt;</description>
		<link>https://example.org/markup</link>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if strings.ContainsAny(items[0].Title, "<>") {
		t.Errorf("title still contains markup: %q", items[0].Title)
	}
	if strings.Contains(items[0].Title, "  ") {
		t.Errorf("whitespace not collapsed: %q", items[0].Title)
	}
	if strings.ContainsAny(items[0].Description, "<>") {
		t.Errorf("description still contains markup: %q", items[0].Description)
	}
}

func TestParse_CapsDescriptionLength(t *testing.T) {
	long := strings.Repeat("gst reform details ", 60) // well over 500 chars
	doc := rssDoc(`<item>
		<title>Budget session of parliament</title>
		<description>` + long + `</description>
		<link>https://example.org/long</link>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if got := len([]rune(items[0].Description)); got > 500 {
		t.Errorf("description length %d exceeds cap", got)
	}
}

func TestParse_DropsEntriesWithoutTitle(t *testing.T) {
	doc := rssDoc(`<item>
		<description>india government update without a headline</description>
		<link>https://example.org/untitled</link>
	</item>
	<item>
		<title>Cabinet approves new education policy</title>
		<link>https://example.org/titled</link>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected only the titled entry, got %d items", len(items))
	}
	if items[0].Link != "https://example.org/titled" {
		t.Errorf("wrong entry kept: %q", items[0].Link)
	}
}

func TestParse_DropsIrrelevantEntries(t *testing.T) {
	doc := rssDoc(`<item>
		<title>Soap opera recap of the week</title>
		<description>who kissed whom</description>
		<link>https://example.org/soap</link>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 0 {
		t.Errorf("irrelevant entry must be dropped, got %v", items)
	}
}

func TestParse_UnparseableDateDefaultsToNow(t *testing.T) {
	doc := rssDoc(`<item>
		<title>Parliament adjourned sine die</title>
		<link>https://example.org/nodate</link>
		<pubDate>sometime last week</pubDate>
	</item>`)

	before := time.Now().UTC().Add(-time.Minute)
	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].PubDate.Before(before) {
		t.Errorf("unparseable date should default to now, got %v", items[0].PubDate)
	}
}

func TestParse_ImageFromMediaExtension(t *testing.T) {
	doc := rssDoc(`<item>
		<title>ISRO launches navigation satellite</title>
		<link>https://example.org/isro</link>
		<media:thumbnail url="https://img.example.org/launch.jpg"/>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ImageURL != "https://img.example.org/launch.jpg" {
		t.Errorf("image url: got %q", items[0].ImageURL)
	}
}

func TestParse_ImageFromEnclosure(t *testing.T) {
	doc := rssDoc(`<item>
		<title>Monsoon forecast for India revised</title>
		<link>https://example.org/monsoon</link>
		<enclosure url="https://img.example.org/monsoon.png" length="1000" type="image/png"/>
	</item>`)

	items := newTestParser().Parse(doc, testSource, topics.Default())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ImageURL != "https://img.example.org/monsoon.png" {
		t.Errorf("image url from enclosure: got %q", items[0].ImageURL)
	}
}

func TestParse_CapsItemCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, `<item><title>India update number %d</title><link>https://example.org/%d</link></item>`, i, i)
	}
	items := newTestParser().Parse(rssDoc(b.String()), testSource, topics.Default())
	if len(items) != 20 {
		t.Errorf("expected per-feed cap of 20, got %d", len(items))
	}
}

func TestParse_GarbageYieldsEmptyList(t *testing.T) {
	for _, raw := range []string{"", "not xml at all", "<html><body>nope</body></html>"} {
		if items := newTestParser().Parse(raw, testSource, topics.Default()); len(items) != 0 {
			t.Errorf("raw %q: expected empty list, got %d items", raw, len(items))
		}
	}
}

func TestItemID_LinkPreferredOverTitle(t *testing.T) {
	a := itemID("https://example.org/x", "Title")
	b := itemID("https://example.org/x", "Other Title")
	if a != b {
		t.Errorf("id must derive from link when present")
	}
	c := itemID("", "Title")
	d := itemID("", "Title")
	if c != d {
		t.Errorf("id from title must be deterministic")
	}
	if a == c {
		t.Errorf("different bases should give different ids")
	}
}
