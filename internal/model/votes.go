package model

import "slices"

// Votes holds the usernames that voted on an article or a comment.
// A username is a member of at most one of the two lists.
type Votes struct {
	UpvotedBy   []string `json:"upvotedBy" yaml:"upvotedBy"`
	DownvotedBy []string `json:"downvotedBy" yaml:"downvotedBy"`
}

func NewVotes() Votes {
	return Votes{UpvotedBy: []string{}, DownvotedBy: []string{}}
}

// RemoveID returns ids without the first occurrence of id.
func RemoveID(ids []int64, id int64) []int64 {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}

	return ids
}
