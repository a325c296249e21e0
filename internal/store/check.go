package store

import (
	"errors"
	"fmt"
	"slices"
)

// Check verifies the cross-references between users, articles, comments
// and votes. It returns every violation found, joined.
func (s *Store) Check() error {
	var errs []error

	for name, u := range s.users {
		for _, id := range u.ArticleIDs {
			a, ok := s.Article(id)
			if !ok {
				errs = append(errs, fmt.Errorf("user %q lists missing article %d", name, id))
			} else if a.Username != name {
				errs = append(errs, fmt.Errorf("user %q lists article %d owned by %q", name, id, a.Username))
			}
		}
		for _, id := range u.CommentIDs {
			c, ok := s.Comment(id)
			if !ok {
				errs = append(errs, fmt.Errorf("user %q lists missing comment %d", name, id))
			} else if c.Username != name {
				errs = append(errs, fmt.Errorf("user %q lists comment %d written by %q", name, id, c.Username))
			}
		}
	}

	for id, a := range s.articles {
		if a == nil {
			continue
		}
		if id >= s.nextArticleID {
			errs = append(errs, fmt.Errorf("article %d not below counter %d", id, s.nextArticleID))
		}
		if u, ok := s.User(a.Username); !ok || !slices.Contains(u.ArticleIDs, id) {
			errs = append(errs, fmt.Errorf("article %d missing from author %q", id, a.Username))
		}
		if both := overlap(a.UpvotedBy, a.DownvotedBy); both != "" {
			errs = append(errs, fmt.Errorf("article %d voted both ways by %q", id, both))
		}

		var live []int64
		for cid, c := range s.comments {
			if c != nil && c.ArticleID == id {
				live = append(live, cid)
			}
		}
		listed := slices.Clone(a.CommentIDs)
		slices.Sort(live)
		slices.Sort(listed)
		if !slices.Equal(live, listed) {
			errs = append(errs, fmt.Errorf("article %d lists comments %v, live comments are %v", id, listed, live))
		}
	}

	for id, c := range s.comments {
		if c == nil {
			continue
		}
		if id >= s.nextCommentID {
			errs = append(errs, fmt.Errorf("comment %d not below counter %d", id, s.nextCommentID))
		}
		if u, ok := s.User(c.Username); !ok || !slices.Contains(u.CommentIDs, id) {
			errs = append(errs, fmt.Errorf("comment %d missing from author %q", id, c.Username))
		}
		if _, ok := s.Article(c.ArticleID); !ok {
			errs = append(errs, fmt.Errorf("comment %d on missing article %d", id, c.ArticleID))
		}
		if both := overlap(c.UpvotedBy, c.DownvotedBy); both != "" {
			errs = append(errs, fmt.Errorf("comment %d voted both ways by %q", id, both))
		}
	}

	return errors.Join(errs...)
}

func overlap(up, down []string) string {
	for _, name := range up {
		if slices.Contains(down, name) {
			return name
		}
	}

	return ""
}
