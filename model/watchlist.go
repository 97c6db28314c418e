package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

type Status string

const (
	StatusToWatch Status = "To Watch"
	StatusWatched Status = "Watched"
)

const (
	defaultEntryYear  = "2024"
	defaultEntryGenre = "Action, Adventure"
)

// Statuses lists the buckets in display order.
var Statuses = []Status{StatusToWatch, StatusWatched}

// ParseStatus accepts the wire names and a few command-line friendly aliases.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "towatch":
		return StatusToWatch, nil
	case "watched":
		return StatusWatched, nil
	default:
		return "", fmt.Errorf("unknown status %q (want %q or %q)", value, StatusToWatch, StatusWatched)
	}
}

type WatchlistEntry struct {
	MovieID   int      `json:"movieId"`
	Title     string   `json:"title"`
	PosterURL string   `json:"poster_url,omitempty"`
	Year      string   `json:"year,omitempty"`
	Genre     []string `json:"genre,omitempty"`
}

// UnmarshalJSON tolerates numeric strings for ids and years and a comma separated genre string.
func (e *WatchlistEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		MovieID   any    `json:"movieId"`
		Title     string `json:"title"`
		PosterURL string `json:"poster_url"`
		Year      any    `json:"year"`
		Genre     any    `json:"genre"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := cast.ToIntE(raw.MovieID)
	if err != nil {
		return fmt.Errorf("watchlist entry movieId: %w", err)
	}

	e.MovieID = id
	e.Title = raw.Title
	e.PosterURL = raw.PosterURL
	e.Year = ""
	if raw.Year != nil {
		e.Year = cast.ToString(raw.Year)
	}
	e.Genre = nil
	switch genre := raw.Genre.(type) {
	case nil:
	case string:
		for _, part := range strings.Split(genre, ",") {
			if part = strings.TrimSpace(part); part != "" {
				e.Genre = append(e.Genre, part)
			}
		}
	default:
		e.Genre = cast.ToStringSlice(genre)
	}
	return nil
}

func (e WatchlistEntry) DisplayYear() string {
	if strings.TrimSpace(e.Year) == "" {
		return defaultEntryYear
	}
	return e.Year
}

func (e WatchlistEntry) DisplayGenre() string {
	if len(e.Genre) == 0 {
		return defaultEntryGenre
	}
	return strings.Join(e.Genre, ", ")
}

// MyList holds both buckets of the personal list. The server keeps them disjoint.
type MyList struct {
	ToWatch []WatchlistEntry `json:"To Watch"`
	Watched []WatchlistEntry `json:"Watched"`
}

// EmptyList returns two empty (non-nil) buckets.
func EmptyList() MyList {
	return MyList{ToWatch: []WatchlistEntry{}, Watched: []WatchlistEntry{}}
}

func (l MyList) Bucket(status Status) []WatchlistEntry {
	switch status {
	case StatusToWatch:
		return l.ToWatch
	case StatusWatched:
		return l.Watched
	default:
		return nil
	}
}

type AddRequest struct {
	MovieID int    `json:"movieId"`
	Status  Status `json:"status"`
}
