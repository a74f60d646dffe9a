package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResultToolReclips(t *testing.T) {
	longText := strings.Repeat("z", 400)
	sdk := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"id": "abc", "title": "Long post", "subreddit": "options", "author": "a",
			 "score": 5, "num_comments": 1, "created_utc": 1700000000.0,
			 "permalink": "/r/options/comments/abc/x/", "selftext": "` + longText + `"}
		]}`))
	})

	// Search with a tight budget first to obtain a result id.
	sh := NewSearchHandler(sdk)
	searchRes, err := sh.handleSearch(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"query":     "long",
				"subreddit": "options",
				"max_text":  float64(50),
			},
		},
	})
	require.NoError(t, err)

	var searchPayload struct {
		Posts []struct {
			SelfText string `json:"selfText"`
		} `json:"posts"`
		ResultID string `json:"resultId"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, searchRes)), &searchPayload))
	require.Contains(t, searchPayload.Posts[0].SelfText, "more chars", "search response should be truncated")

	// Refine: same result, unlimited budget, no backend traffic.
	rh := NewResultHandler(sdk)
	res, err := rh.handleGetResult(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"result_id": searchPayload.ResultID,
			},
		},
	})
	require.NoError(t, err)

	var refined struct {
		Posts []struct {
			SelfText string `json:"selfText"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &refined))
	assert.Equal(t, longText, refined.Posts[0].SelfText, "refined result must carry the full untruncated text")
}

func TestGetResultToolUnknownID(t *testing.T) {
	sdk := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})
	rh := NewResultHandler(sdk)

	res, err := rh.handleGetResult(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"result_id": "expired-or-bogus",
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError, "unknown result id must produce a tool error telling the caller to re-search")
	assert.Contains(t, textContent(t, res), "search again")
}
