package domain

import "time"

// SourceFormat selects the fetch/extraction strategy for a source.
type SourceFormat string

const (
	FormatYouTube SourceFormat = "youtube"
	FormatWebpage SourceFormat = "webpage"
)

// SourceKind distinguishes channel-style origins from single pages.
type SourceKind string

const (
	KindVideoChannel SourceKind = "video-channel"
	KindPage         SourceKind = "page"
)

// Source identifies one content origin to poll. Constructed by config
// loading, consumed read-only by the pipeline.
type Source struct {
	Name   string
	URL    string
	Kind   SourceKind
	Format SourceFormat
	Type   string
}

// Article is one candidate article or post produced by a scan.
// RawDate keeps whatever the upstream (model or platform) emitted;
// PublishedAt is its normalized form and stays zero when unparseable.
type Article struct {
	Source      string
	Type        string
	Format      SourceFormat
	Title       string
	URL         string
	RawDate     string
	PublishedAt time.Time
	Region      string
	Summary     string
}

// Valid reports whether the record carries the minimum required fields.
func (a Article) Valid() bool {
	return a.Title != "" && a.URL != ""
}

// Video is one upload returned by the channel catalog. RawDate is the
// platform's own publishedAt string, already canonical ISO-8601.
type Video struct {
	ID          string
	Title       string
	URL         string
	RawDate     string
	PublishedAt time.Time
}

// PageContent is one retrieved unit of page text before extraction.
// Text has already passed through the cleaner; Links is only populated
// by the rendered fetch path.
type PageContent struct {
	URL   string
	Text  string
	Links []string
}

// LinksMarker delimits the harvested link list inside augmented text.
const LinksMarker = "--- ALL LINKS ---"

// Augmented returns the cleaned text with the sorted link list appended
// under the marker line. This is the exact document the extraction
// prompt consumes; without links it is just the cleaned text.
func (p PageContent) Augmented() string {
	if len(p.Links) == 0 {
		return p.Text
	}
	out := p.Text + "\n\n" + LinksMarker + "\n"
	for i, link := range p.Links {
		if i > 0 {
			out += "\n"
		}
		out += link
	}
	return out
}

// HasLink reports whether the given URL was offered to the extractor.
func (p PageContent) HasLink(url string) bool {
	for _, link := range p.Links {
		if link == url {
			return true
		}
	}
	return false
}
