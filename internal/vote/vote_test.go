package vote

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/scoop/internal/model"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		start    model.Votes
		dir      Direction
		wantUp   []string
		wantDown []string
	}{
		{
			name:     "first upvote",
			start:    model.NewVotes(),
			dir:      Up,
			wantUp:   []string{"alice"},
			wantDown: []string{},
		},
		{
			name:     "repeat upvote is a no-op",
			start:    model.Votes{UpvotedBy: []string{"alice"}, DownvotedBy: []string{}},
			dir:      Up,
			wantUp:   []string{"alice"},
			wantDown: []string{},
		},
		{
			name:     "downvote clears upvote",
			start:    model.Votes{UpvotedBy: []string{"bob", "alice"}, DownvotedBy: []string{}},
			dir:      Down,
			wantUp:   []string{"bob"},
			wantDown: []string{"alice"},
		},
		{
			name:     "upvote clears downvote",
			start:    model.Votes{UpvotedBy: []string{}, DownvotedBy: []string{"alice", "bob"}},
			dir:      Up,
			wantUp:   []string{"alice"},
			wantDown: []string{"bob"},
		},
		{
			name:     "repeat downvote is a no-op",
			start:    model.Votes{UpvotedBy: []string{"bob"}, DownvotedBy: []string{"alice"}},
			dir:      Down,
			wantUp:   []string{"bob"},
			wantDown: []string{"alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			Toggle(&v, "alice", tt.dir)
			assert.Equal(t, tt.wantUp, v.UpvotedBy)
			assert.Equal(t, tt.wantDown, v.DownvotedBy)
		})
	}
}

func TestToggleKeepsVotesExclusive(t *testing.T) {
	users := []string{"alice", "bob", "carol"}
	rnd := rand.New(rand.NewSource(1))
	v := model.NewVotes()

	for i := 0; i < 500; i++ {
		d := Up
		if rnd.Intn(2) == 0 {
			d = Down
		}
		Toggle(&v, users[rnd.Intn(len(users))], d)

		for _, u := range users {
			require.False(t, slices.Contains(v.UpvotedBy, u) && slices.Contains(v.DownvotedBy, u), "%s voted both ways", u)
		}
		require.LessOrEqual(t, len(v.UpvotedBy)+len(v.DownvotedBy), len(users))
	}
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("upvote")
	assert.True(t, ok)
	assert.Equal(t, Up, d)

	d, ok = ParseDirection("downvote")
	assert.True(t, ok)
	assert.Equal(t, Down, d)

	_, ok = ParseDirection("sidevote")
	assert.False(t, ok)
}
