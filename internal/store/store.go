// Package store keeps every user, article and comment in memory.
//
// Deleted articles and comments stay in their tables as tombstones (a nil
// record under the original ID) so that listings can skip them and counters
// never hand out a freed ID again.
package store

import (
	"sort"

	"github.com/SergeyParamoshkin/scoop/internal/model"
)

// Store is the authoritative collection of all entities and ID counters.
// It does no locking: callers serialise access (see router.Server).
type Store struct {
	users         map[string]*model.User
	articles      map[int64]*model.Article
	comments      map[int64]*model.Comment
	nextArticleID int64
	nextCommentID int64
}

func New() *Store {
	return &Store{
		users:         map[string]*model.User{},
		articles:      map[int64]*model.Article{},
		comments:      map[int64]*model.Comment{},
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

// User returns the user registered under username.
func (s *Store) User(username string) (*model.User, bool) {
	u, ok := s.users[username]

	return u, ok && u != nil
}

// CreateUser registers a user with empty article and comment lists.
// An existing user with the same name is returned unchanged.
func (s *Store) CreateUser(username string) *model.User {
	if u, ok := s.User(username); ok {
		return u
	}

	u := model.NewUser(username)
	s.users[username] = u

	return u
}

// Article returns a live article. Tombstoned and unknown IDs both report false.
func (s *Store) Article(id int64) (*model.Article, bool) {
	a := s.articles[id]

	return a, a != nil
}

// Articles returns every live article, newest (highest ID) first.
func (s *Store) Articles() []*model.Article {
	list := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if a != nil {
			list = append(list, a)
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })

	return list
}

// InsertArticle assigns the next article ID and stores the article.
func (s *Store) InsertArticle(a *model.Article) *model.Article {
	a.ID = s.nextArticleID
	s.nextArticleID++
	s.articles[a.ID] = a

	return a
}

// TombstoneArticle marks the article as deleted, keeping its key.
func (s *Store) TombstoneArticle(id int64) {
	if _, ok := s.articles[id]; ok {
		s.articles[id] = nil
	}
}

// Comment returns a live comment. Tombstoned and unknown IDs both report false.
func (s *Store) Comment(id int64) (*model.Comment, bool) {
	c := s.comments[id]

	return c, c != nil
}

// InsertComment assigns the next comment ID and stores the comment.
func (s *Store) InsertComment(c *model.Comment) *model.Comment {
	c.ID = s.nextCommentID
	s.nextCommentID++
	s.comments[c.ID] = c

	return c
}

// TombstoneComment marks the comment as deleted, keeping its key.
func (s *Store) TombstoneComment(id int64) {
	if _, ok := s.comments[id]; ok {
		s.comments[id] = nil
	}
}

// ArticlesOf resolves ids to live articles, skipping anything deleted.
func (s *Store) ArticlesOf(ids []int64) []*model.Article {
	list := make([]*model.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.Article(id); ok {
			list = append(list, a)
		}
	}

	return list
}

// CommentsOf resolves ids to live comments, skipping anything deleted.
func (s *Store) CommentsOf(ids []int64) []*model.Comment {
	list := make([]*model.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.Comment(id); ok {
			list = append(list, c)
		}
	}

	return list
}
