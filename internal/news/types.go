package news

// Article is one news item as returned by NewsAPI
type Article struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Source identifies the publisher of an article
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// apiResponse represents the NewsAPI envelope. Status is "ok" or "error";
// on error Code and Message describe the failure.
type apiResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}
