package model

import "time"

// Repo — репозиторий с issue и владельцем. Readme большой и читается отдельно (Fetch).
type Repo struct {
	ID         string    `recmap:"id,id" json:"id"`
	URL        string    `recmap:"url" json:"url"`
	CreatedAt  time.Time `recmap:"createdAt" json:"createdAt"`
	AuthorName string    `recmap:"authorName" json:"authorName"`
	Stars      int64     `recmap:"stars" json:"stars"`
	Languages  []string  `recmap:"languages" json:"languages,omitempty"`
	Issues     []*Issue  `recmap:"issues" json:"issues,omitempty"`
	Owner      *User     `recmap:"owner" json:"owner,omitempty"`
	Readme     string    `recmap:"readme,lazy" json:"readme,omitempty"`
}
