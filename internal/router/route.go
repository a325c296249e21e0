package router

import (
	"strings"

	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

// Shape is one of the four path forms the API knows about.
type Shape uint8

const (
	Collection Shape = iota + 1 // /<resource>
	Member                      // /<resource>/:id
	UserMember                  // /users/:username
	Ballot                      // /<resource>/:id/<upvote|downvote>
)

// Key is a normalised route: the shape of the path plus the parts of it
// that are not parameters.
type Key struct {
	Shape     Shape
	Resource  string
	Direction vote.Direction
}

// Match derives the route key of path. Only the first three non-empty
// segments matter; a third segment that is not a vote direction is
// ignored. The root path has no key.
func Match(path string) (Key, bool) {
	segments := strings.FieldsFunc(path, func(c rune) bool { return c == '/' })

	switch {
	case len(segments) == 0:
		return Key{}, false
	case len(segments) == 1:
		return Key{Shape: Collection, Resource: segments[0]}, true
	}

	if len(segments) > 2 {
		if d, ok := vote.ParseDirection(segments[2]); ok {
			return Key{Shape: Ballot, Resource: segments[0], Direction: d}, true
		}
	}

	if segments[0] == "users" {
		return Key{Shape: UserMember, Resource: segments[0]}, true
	}

	return Key{Shape: Member, Resource: segments[0]}, true
}

// String renders the key the way routes are documented, e.g. /articles/:id.
func (k Key) String() string {
	return k.format(":id", ":username")
}

// Pattern renders the key as a chi route pattern, e.g. /articles/{id}.
func (k Key) Pattern() string {
	return k.format("{id}", "{username}")
}

func (k Key) format(id, username string) string {
	switch k.Shape {
	case Collection:
		return "/" + k.Resource
	case Member:
		return "/" + k.Resource + "/" + id
	case UserMember:
		return "/" + k.Resource + "/" + username
	case Ballot:
		return "/" + k.Resource + "/" + id + "/" + string(k.Direction)
	}

	return ""
}
