package anime

import "strings"

// StreamingService names a platform carrying a title.
type StreamingService struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Record is a metadata snapshot for one anime title. Optional catalog fields
// are pointers so "absent" stays distinguishable from zero.
type Record struct {
	ID         int                `json:"id"`
	Title      string             `json:"title"`
	Score      *float64           `json:"score,omitempty"`
	Episodes   *int               `json:"episodes,omitempty"`
	Synopsis   *string            `json:"synopsis,omitempty"`
	Studios    []string           `json:"studios,omitempty"`
	Streaming  []StreamingService `json:"streaming,omitempty"`
	URL        string             `json:"url,omitempty"`
	ImageURL   string             `json:"image_url,omitempty"`
	TrailerURL string             `json:"trailer_url,omitempty"`
	Status     string             `json:"status,omitempty"`
	Rank       int                `json:"rank,omitempty"`
	Year       int                `json:"year,omitempty"`
	Genres     []string           `json:"genres,omitempty"`
}

// ScoreOrZero returns the score, or 0 when the catalog has none.
func (r Record) ScoreOrZero() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// EpisodesOrZero returns the episode count, or 0 when unknown.
func (r Record) EpisodesOrZero() int {
	if r.Episodes == nil {
		return 0
	}
	return *r.Episodes
}

// SynopsisOr returns the trimmed synopsis or fallback when it is missing or blank.
func (r Record) SynopsisOr(fallback string) string {
	if r.Synopsis == nil {
		return fallback
	}
	if s := strings.TrimSpace(*r.Synopsis); s != "" {
		return s
	}
	return fallback
}

// HasStudios reports whether at least one non-blank studio name is present.
func (r Record) HasStudios() bool {
	return len(r.StudioNames()) > 0
}

// StudioNames returns the studio list without blank entries.
func (r Record) StudioNames() []string {
	names := make([]string, 0, len(r.Studios))
	for _, s := range r.Studios {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// Page is one page of a browsable list.
type Page struct {
	Records         []Record `json:"records"`
	CurrentPage     int      `json:"current_page"`
	LastVisiblePage int      `json:"last_visible_page"`
	HasNextPage     bool     `json:"has_next_page"`
}

// Titles returns up to limit non-blank titles in list order. A limit <= 0
// returns every title.
func Titles(records []Record, limit int) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		out = append(out, title)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Float is a convenience for building records in code and tests.
func Float(v float64) *float64 { return &v }

// Int is a convenience for building records in code and tests.
func Int(v int) *int { return &v }

// String is a convenience for building records in code and tests.
func String(v string) *string { return &v }

// GeneralGenre is the sentinel genre meaning "no genre filter".
const GeneralGenre = "general"

// TopFilter narrows a top-list fetch. Zero values mean "no filter"; a Genre of
// GeneralGenre is treated as no genre.
type TopFilter struct {
	Genre string
	Year  int
	Limit int
}

// HasGenre reports whether the filter names a concrete genre.
func (f TopFilter) HasGenre() bool {
	g := strings.TrimSpace(f.Genre)
	return g != "" && !strings.EqualFold(g, GeneralGenre)
}
