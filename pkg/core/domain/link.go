package domain

import "time"

// Link is a posted resource: an external URL, an uploaded file, or both,
// filed under a subject domain by name.
type Link struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	FileURL     string    `json:"fileUrl,omitempty"`
	Domain      string    `json:"domain"`
	PostedAt    time.Time `json:"postedAt"`
}
