package board

// Column is a project board column as returned by the API.
type Column struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CardsURL string `json:"cards_url"`
}

// ProjectCard is a card of a board column.
// ContentURL is set when the card links an issue or pull request.
type ProjectCard struct {
	ID         int64  `json:"id"`
	Note       string `json:"note"`
	Archived   bool   `json:"archived"`
	ContentURL string `json:"content_url"`
	CreatedAt  string `json:"created_at"`
	URL        string `json:"url"`
}

// Issue is the subset of issue fields merged into a card.
type Issue struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	State     string `json:"state"`
	HTMLURL   string `json:"html_url"`
	CreatedAt string `json:"created_at"`
	Assignees []User `json:"assignees"`
}

// User is an issue assignee.
type User struct {
	Login string `json:"login"`
}
