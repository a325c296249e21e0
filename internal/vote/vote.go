// Package vote implements the up/down vote toggle shared by articles and
// comments.
package vote

import (
	"slices"

	"github.com/SergeyParamoshkin/scoop/internal/model"
)

// Direction is the vote being cast. Its value is the trailing path segment
// of the vote routes.
type Direction string

const (
	Up   Direction = "upvote"
	Down Direction = "downvote"
)

// ParseDirection reports whether s names a vote direction.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, true
	}

	return "", false
}

// Toggle records username's vote. The opposite vote, if any, is cleared and
// repeating the same vote changes nothing. There is no way to withdraw a
// vote without casting the other one.
func Toggle(v *model.Votes, username string, d Direction) {
	switch d {
	case Up:
		v.DownvotedBy = remove(v.DownvotedBy, username)
		v.UpvotedBy = add(v.UpvotedBy, username)
	case Down:
		v.UpvotedBy = remove(v.UpvotedBy, username)
		v.DownvotedBy = add(v.DownvotedBy, username)
	}
}

func add(names []string, name string) []string {
	if slices.Contains(names, name) {
		return names
	}

	return append(names, name)
}

func remove(names []string, name string) []string {
	if i := slices.Index(names, name); i >= 0 {
		return slices.Delete(names, i, i+1)
	}

	return names
}
