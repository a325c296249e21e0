//go:build integration

package client

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/scoop/internal/payload"
	"github.com/SergeyParamoshkin/scoop/internal/vote"
)

// Runs against a live server, e.g. `IS_TEST_MODE=1 go run .`.
func addr() string {
	if v := os.Getenv("SCOOP_ADDR"); v != "" {
		return v
	}

	return "http://localhost:4000"
}

func TestLiveRoundTrip(t *testing.T) {
	c := Client{
		Addr:   addr(),
		Client: http.Client{Timeout: 5 * time.Second},
	}
	defer c.CloseIdleConnections()
	ctx := context.Background()

	_, err := c.GetOrCreateUser(ctx, "integration")
	require.NoError(t, err)

	a, err := c.CreateArticle(ctx, payload.NewArticle{Title: "live", URL: "https://example.com", Username: "integration"})
	require.NoError(t, err)

	a, err = c.VoteArticle(ctx, a.ID, "integration", vote.Up)
	require.NoError(t, err)
	assert.Contains(t, a.UpvotedBy, "integration")

	require.NoError(t, c.DeleteArticle(ctx, a.ID))
}
