package store

import (
	"maps"

	"github.com/SergeyParamoshkin/scoop/internal/model"
)

// Snapshot is the serialisable shape of the store. Tombstones are nil map
// values and are written out as null.
type Snapshot struct {
	Users         map[string]*model.User   `json:"users" yaml:"users"`
	Articles      map[int64]*model.Article `json:"articles" yaml:"articles"`
	NextArticleID int64                    `json:"nextArticleId" yaml:"nextArticleId"`
	Comments      map[int64]*model.Comment `json:"comments" yaml:"comments"`
	NextCommentID int64                    `json:"nextCommentId" yaml:"nextCommentId"`
}

// Snapshot copies the tables. Records are shared, so the snapshot must be
// consumed before the next mutation.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Users:         maps.Clone(s.users),
		Articles:      maps.Clone(s.articles),
		NextArticleID: s.nextArticleID,
		Comments:      maps.Clone(s.comments),
		NextCommentID: s.nextCommentID,
	}
}

// Restore builds a store from a snapshot. Every field falls back to its
// empty default on its own, and counters are raised past the highest ID
// already present.
func Restore(snap Snapshot) *Store {
	s := New()

	for name, u := range snap.Users {
		if u == nil {
			continue
		}
		if u.Username == "" {
			u.Username = name
		}
		if u.ArticleIDs == nil {
			u.ArticleIDs = []int64{}
		}
		if u.CommentIDs == nil {
			u.CommentIDs = []int64{}
		}
		s.users[name] = u
	}

	for id, a := range snap.Articles {
		if a != nil {
			a.ID = id
			if a.CommentIDs == nil {
				a.CommentIDs = []int64{}
			}
			normalizeVotes(&a.Votes)
		}
		s.articles[id] = a
		if id >= s.nextArticleID {
			s.nextArticleID = id + 1
		}
	}

	for id, c := range snap.Comments {
		if c != nil {
			c.ID = id
			normalizeVotes(&c.Votes)
		}
		s.comments[id] = c
		if id >= s.nextCommentID {
			s.nextCommentID = id + 1
		}
	}

	if snap.NextArticleID > s.nextArticleID {
		s.nextArticleID = snap.NextArticleID
	}
	if snap.NextCommentID > s.nextCommentID {
		s.nextCommentID = snap.NextCommentID
	}

	return s
}

func normalizeVotes(v *model.Votes) {
	if v.UpvotedBy == nil {
		v.UpvotedBy = []string{}
	}
	if v.DownvotedBy == nil {
		v.DownvotedBy = []string{}
	}
}
