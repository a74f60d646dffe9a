package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/rrajasek95/reddit-data-mcp/reddit"
)

// SearchHandler exposes the search tool.
type SearchHandler struct {
	client *reddit.Client
}

func NewSearchHandler(c *reddit.Client) *SearchHandler {
	return &SearchHandler{client: c}
}

const searchDescription = `Search Reddit posts and optionally fetch top comments.

Returns structured post data (title, score, subreddit, URL, text) with a source
indicator naming the backend that produced each post. When include_comments is
true, also fetches top comments for each post.

Common patterns:
- Broad search: search("topic")
- Scoped to subreddit: search("topic", subreddit="wallstreetbets")
- With discussion: search("topic", include_comments=true)
- Recent activity in a community: search("", subreddit="options", time_filter="week", sort="created_utc")
- More data: increase limit (max 100)
- Deep dive with comments: search("topic", limit=25, include_comments=true, comments_per_post=10)

The response carries a result_id; pass it to get_result to re-read the same
posts under a different max_text budget without re-fetching.`

// RegisterTools registers the search tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("search",
		mcp.WithDescription(searchDescription),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text; empty string browses/lists without a filter")),
		mcp.WithString("subreddit", mcp.Description("Limit to a specific subreddit (optional)")),
		mcp.WithString("sort", mcp.Description("Sort key: score, num_comments, created_utc (default score)")),
		mcp.WithString("time_filter", mcp.Description("Time filter: all, day, week, month, year (default all)")),
		mcp.WithNumber("limit", mcp.Description("Number of posts to return (1-100, default 10)")),
		mcp.WithBoolean("include_comments", mcp.Description("Fetch top comments for each post (default false)")),
		mcp.WithNumber("comments_per_post", mcp.Description("Comments per post when include_comments is true (default 5)")),
		mcp.WithNumber("max_text", mcp.Description("Character budget per text field, 0 = unlimited (default 2000)")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required (use \"\" to browse)"), nil
	}

	sr := reddit.SearchRequest{
		Query:           query,
		Subreddit:       stringArg(req, "subreddit"),
		Sort:            reddit.Sort(stringArg(req, "sort")),
		TimeFilter:      reddit.TimeFilter(stringArg(req, "time_filter")),
		Limit:           intArg(req, "limit", 0),
		CommentsPerPost: intArg(req, "comments_per_post", 5),
		MaxText:         intArg(req, "max_text", 2000),
	}
	if v, ok := req.GetArguments()["include_comments"].(bool); ok {
		sr.IncludeComments = v
	}

	log.Debug().
		Str("query", query).
		Str("subreddit", sr.Subreddit).
		Str("sort", string(sr.Sort)).
		Int("limit", sr.Limit).
		Bool("include_comments", sr.IncludeComments).
		Msg("handling search request")

	start := time.Now()
	resp, err := sh.client.Search(ctx, sr)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("query", query).
			Str("subreddit", sr.Subreddit).
			Dur("elapsed", elapsed).
			Msg("search failed")
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	log.Debug().
		Str("query", query).
		Dur("elapsed", elapsed).
		Int("count", resp.Count).
		Msg("search completed")

	b, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

// stringArg reads an optional string argument, empty when absent.
func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.GetArguments()[key].(string)
	return v
}

// intArg reads an optional numeric argument. JSON numbers decode as float64.
func intArg(req mcp.CallToolRequest, key string, def int) int {
	if v, ok := req.GetArguments()[key].(float64); ok {
		return int(v)
	}
	return def
}
