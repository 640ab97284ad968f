package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// FixtureAnime is one title served by the fake catalog.
type FixtureAnime struct {
	ID       int
	Title    string
	Score    float64
	Episodes int
	Synopsis string
	Studios  []string
	Genres   []string
	Year     int
}

// Catalog is the data behind a fake Jikan server. Anime order is the top-list order.
type Catalog struct {
	Anime           []FixtureAnime
	Genres          map[string]int
	Recommendations map[int][]int
	PageSize        int
}

// NewJikanServer starts a fake Jikan v4 API serving catalog.
func NewJikanServer(t testing.TB, catalog Catalog) *httptest.Server {
	t.Helper()
	if catalog.PageSize <= 0 {
		catalog.PageSize = 25
	}
	byID := make(map[int]FixtureAnime, len(catalog.Anime))
	for _, a := range catalog.Anime {
		byID[a.ID] = a
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /anime", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var matches []FixtureAnime
		for _, a := range catalog.Anime {
			if term := q.Get("q"); term != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(term)) {
				continue
			}
			if genre := q.Get("genres"); genre != "" && !hasGenre(a, catalog.Genres, genre) {
				continue
			}
			if start := q.Get("start_date"); len(start) >= 4 && strconv.Itoa(a.Year) != start[:4] {
				continue
			}
			matches = append(matches, a)
		}
		writeList(w, limit(matches, q.Get("limit")), 1, 1, false)
	})
	mux.HandleFunc("GET /anime/{id}/full", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		a, ok := byID[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": 404, "message": "Resource does not exist"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": entry(a)})
	})
	mux.HandleFunc("GET /anime/{id}/recommendations", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		data := []any{}
		for _, recID := range catalog.Recommendations[id] {
			if a, ok := byID[recID]; ok {
				data = append(data, map[string]any{"entry": map[string]any{"mal_id": a.ID, "title": a.Title}, "votes": 1})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})
	mux.HandleFunc("GET /top/anime", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") == "" {
			writeList(w, limit(catalog.Anime, q.Get("limit")), 1, 1, false)
			return
		}
		page, _ := strconv.Atoi(q.Get("page"))
		if page < 1 {
			page = 1
		}
		last := (len(catalog.Anime) + catalog.PageSize - 1) / catalog.PageSize
		if last == 0 {
			last = 1
		}
		start := (page - 1) * catalog.PageSize
		end := start + catalog.PageSize
		if start > len(catalog.Anime) {
			start = len(catalog.Anime)
		}
		if end > len(catalog.Anime) {
			end = len(catalog.Anime)
		}
		writeList(w, catalog.Anime[start:end], page, last, page < last)
	})
	mux.HandleFunc("GET /genres/anime", func(w http.ResponseWriter, r *http.Request) {
		data := []any{}
		for name, id := range catalog.Genres {
			data = append(data, map[string]any{"mal_id": id, "name": name})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func hasGenre(a FixtureAnime, genres map[string]int, rawID string) bool {
	id, _ := strconv.Atoi(rawID)
	for _, name := range a.Genres {
		if genres[name] == id {
			return true
		}
	}
	return false
}

func limit(items []FixtureAnime, raw string) []FixtureAnime {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func writeList(w http.ResponseWriter, items []FixtureAnime, page, last int, hasNext bool) {
	data := make([]any, 0, len(items))
	for _, a := range items {
		data = append(data, entry(a))
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"pagination": map[string]any{"current_page": page, "last_visible_page": last, "has_next_page": hasNext},
		"data":       data,
	})
}

func entry(a FixtureAnime) map[string]any {
	studios := make([]any, 0, len(a.Studios))
	for i, s := range a.Studios {
		studios = append(studios, map[string]any{"mal_id": i + 1, "name": s})
	}
	genres := make([]any, 0, len(a.Genres))
	for _, g := range a.Genres {
		genres = append(genres, map[string]any{"name": g})
	}
	return map[string]any{
		"mal_id":        a.ID,
		"title":         a.Title,
		"title_english": a.Title,
		"score":         a.Score,
		"episodes":      a.Episodes,
		"synopsis":      a.Synopsis,
		"year":          a.Year,
		"studios":       studios,
		"genres":        genres,
		"rank":          0,
	}
}
