package domain

import "time"

// Movie is a catalog entry.
type Movie struct {
	ID               int64     `json:"id" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	PosterURL        string    `json:"posterUrl" bson:"poster_url"`
	YouTubeTrailerID string    `json:"youTubeTrailerId" bson:"youtube_trailer_id"`
	ReleaseDate      time.Time `json:"releaseDate" bson:"release_date"`
	Genre            string    `json:"genre" bson:"genre"`
	BoxOffice        float64   `json:"boxOffice" bson:"box_office"`
}
