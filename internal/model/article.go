package model

// Article data model. The author is referenced by username and every
// comment posted on it is listed in CommentIDs.
type Article struct {
	ID         int64   `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	URL        string  `json:"url" yaml:"url"`
	Username   string  `json:"username" yaml:"username"` // the author
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`

	Votes `yaml:",inline"`
}
