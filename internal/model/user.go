package model

// User data model. Users are keyed by username and are never deleted.
type User struct {
	Username   string  `json:"username" yaml:"username"`
	ArticleIDs []int64 `json:"articleIds" yaml:"articleIds"`
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`
}

func NewUser(username string) *User {
	return &User{
		Username:   username,
		ArticleIDs: []int64{},
		CommentIDs: []int64{},
	}
}
