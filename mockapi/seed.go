package mockapi

import (
	"time"

	"movielist-cli/model"
)

// Seed returns a small catalog for local development.
func Seed() []model.MovieDetail {
	poster := func(slug string) *string {
		u := "https://images.example.com/posters/" + slug + ".jpg"
		return &u
	}
	date := func(y int, m time.Month, d int) model.Date {
		return model.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}
	return []model.MovieDetail{
		{ID: 1, Title: "Inception", Type: model.TypeMovie, PosterURL: poster("inception"), Rating: 8.8,
			Genre: []string{"Action", "Sci-Fi"}, ReleaseDate: date(2010, time.July, 16),
			Description: "A thief who steals corporate secrets through dream-sharing technology is given one last job."},
		{ID: 2, Title: "Breaking Bad", Type: model.TypeShow, PosterURL: poster("breaking-bad"), Rating: 9.5,
			Genre: []string{"Crime", "Drama"}, ReleaseDate: date(2008, time.January, 20),
			Description: "A chemistry teacher turned manufacturer partners with a former student."},
		{ID: 3, Title: "arrival", Type: model.TypeMovie, Rating: 7.9,
			Genre: []string{"Drama", "Sci-Fi"}, ReleaseDate: date(2016, time.November, 11),
			Description: "A linguist works with the military to communicate with alien visitors."},
		{ID: 4, Title: "Dark", Type: model.TypeShow, PosterURL: poster("dark"), Rating: 8.7,
			Genre: []string{"Mystery", "Thriller"}, ReleaseDate: date(2017, time.December, 1),
			Description: "A missing child sets four families on a hunt spanning generations."},
		{ID: 5, Title: "Amélie", Type: model.TypeMovie, PosterURL: poster("amelie"), Rating: 8.3,
			Genre: []string{"Comedy", "Romance"}, ReleaseDate: date(2001, time.April, 25),
			Description: "A shy waitress decides to change the lives of those around her."},
		{ID: 6, Title: "The Office", Type: model.TypeShow, Rating: 9.0,
			Genre: []string{"Comedy"}, ReleaseDate: date(2005, time.March, 24),
			Description: "A mockumentary on a group of office workers."},
	}
}
