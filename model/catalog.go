package model

import (
	"encoding/json"
	"strings"
	"time"
)

type ItemType string

const (
	TypeMovie ItemType = "movie"
	TypeShow  ItemType = "show"
)

type CatalogItem struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Type      ItemType `json:"type"`
	PosterURL *string  `json:"poster_url,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
}

// Initial is the placeholder shown in place of a poster.
func (c CatalogItem) Initial() string {
	for _, r := range strings.TrimSpace(c.Title) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

type MovieDetail struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Type        ItemType `json:"type"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	ReleaseDate Date     `json:"release_date"`
	Rating      float64  `json:"rating"`
}

func (d MovieDetail) Item() CatalogItem {
	rating := d.Rating
	return CatalogItem{
		ID:        d.ID,
		Title:     d.Title,
		Type:      d.Type,
		PosterURL: d.PosterURL,
		Rating:    &rating,
	}
}

// Date is a calendar date that accepts both plain dates and RFC 3339 timestamps.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.Time = time.Time{}
		return nil
	}
	value := strings.TrimSpace(*raw)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) Year() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006")
}
