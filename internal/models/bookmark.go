package models

type Bookmark struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

type AddBookmarkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
