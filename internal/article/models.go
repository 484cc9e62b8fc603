package article

import "time"

// Article is a bookmarked news item owned by exactly one user.
type Article struct {
	ID        string    `json:"id" bson:"_id"`
	Keyword   string    `json:"keyword" bson:"keyword"`
	Title     string    `json:"title" bson:"title"`
	Text      string    `json:"text" bson:"text"`
	Date      string    `json:"date" bson:"date"`
	Source    string    `json:"source" bson:"source"`
	Link      string    `json:"link" bson:"link"`
	Image     string    `json:"image" bson:"image"`
	Owner     string    `json:"owner" bson:"owner"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Fields is the client-supplied part of an Article. Owner is accepted so that a spoofed
// value can be decoded, but it is always replaced by the caller's id.
type Fields struct {
	Keyword string `json:"keyword" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Text    string `json:"text" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Source  string `json:"source" validate:"required"`
	Link    string `json:"link" validate:"required,url"`
	Image   string `json:"image" validate:"required,url"`
	Owner   string `json:"owner,omitempty" validate:"-"`
}
