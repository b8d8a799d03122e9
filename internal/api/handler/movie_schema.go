package handler

import "time"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type movieRequest struct {
	Title            string    `json:"title"            validate:"required,max=200"`
	PosterURL        string    `json:"posterUrl"        validate:"omitempty,url"`
	YouTubeTrailerID string    `json:"youTubeTrailerId" validate:"omitempty,max=32"`
	ReleaseDate      time.Time `json:"releaseDate"      validate:"required"`
	Genre            string    `json:"genre"            validate:"required,max=100"`
	BoxOffice        float64   `json:"boxOffice"        validate:"gte=0"`
}

type movieResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	PosterURL        string    `json:"posterUrl"`
	YouTubeTrailerID string    `json:"youTubeTrailerId"`
	ReleaseDate      time.Time `json:"releaseDate"`
	Genre            string    `json:"genre"`
	BoxOffice        float64   `json:"boxOffice"`
}
