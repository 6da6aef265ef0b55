package domain

// Track is one playable clip from the media catalog.
type Track struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}
