package jikan

import (
	"strings"

	"animebuddy/internal/anime"
)

type namedResource struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

type imageSet struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

type animeEntry struct {
	MalID        int             `json:"mal_id"`
	URL          string          `json:"url"`
	Title        string          `json:"title"`
	TitleEnglish *string         `json:"title_english"`
	Episodes     *int            `json:"episodes"`
	Score        *float64        `json:"score"`
	Synopsis     *string         `json:"synopsis"`
	Status       string          `json:"status"`
	Rank         *int            `json:"rank"`
	Year         *int            `json:"year"`
	Images       imageSet        `json:"images"`
	Studios      []namedResource `json:"studios"`
	Genres       []namedResource `json:"genres"`
	Streaming    []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"streaming"`
	Trailer struct {
		URL *string `json:"url"`
	} `json:"trailer"`
	Aired struct {
		Prop struct {
			From struct {
				Year *int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"aired"`
}

type pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

type listResponse struct {
	Pagination pagination   `json:"pagination"`
	Data       []animeEntry `json:"data"`
}

type singleResponse struct {
	Data *animeEntry `json:"data"`
}

type recommendationResponse struct {
	Data []struct {
		Entry struct {
			MalID  int      `json:"mal_id"`
			URL    string   `json:"url"`
			Title  string   `json:"title"`
			Images imageSet `json:"images"`
		} `json:"entry"`
		Votes int `json:"votes"`
	} `json:"data"`
}

type genreResponse struct {
	Data []namedResource `json:"data"`
}

func (e animeEntry) toRecord() anime.Record {
	rec := anime.Record{
		ID:       e.MalID,
		Title:    pickTitle(e.TitleEnglish, e.Title),
		Score:    e.Score,
		Episodes: e.Episodes,
		Synopsis: e.Synopsis,
		URL:      e.URL,
		ImageURL: pickImage(e.Images),
		Status:   e.Status,
	}
	if e.Trailer.URL != nil {
		rec.TrailerURL = *e.Trailer.URL
	}
	if e.Rank != nil {
		rec.Rank = *e.Rank
	}
	switch {
	case e.Year != nil:
		rec.Year = *e.Year
	case e.Aired.Prop.From.Year != nil:
		rec.Year = *e.Aired.Prop.From.Year
	}
	for _, studio := range e.Studios {
		if name := strings.TrimSpace(studio.Name); name != "" {
			rec.Studios = append(rec.Studios, name)
		}
	}
	for _, genre := range e.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			rec.Genres = append(rec.Genres, name)
		}
	}
	for _, s := range e.Streaming {
		if name := strings.TrimSpace(s.Name); name != "" {
			rec.Streaming = append(rec.Streaming, anime.StreamingService{Name: name, URL: strings.TrimSpace(s.URL)})
		}
	}
	return rec
}

func pickTitle(english *string, fallback string) string {
	if english != nil {
		if t := strings.TrimSpace(*english); t != "" {
			return t
		}
	}
	return strings.TrimSpace(fallback)
}

func pickImage(images imageSet) string {
	if images.JPG.LargeImageURL != "" {
		return images.JPG.LargeImageURL
	}
	return images.JPG.ImageURL
}

func toRecords(entries []animeEntry) []anime.Record {
	records := make([]anime.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.toRecord())
	}
	return records
}
