package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/rrajasek95/reddit-data-mcp/reddit"
)

// ResultHandler exposes the get_result tool for follow-up refinement of a
// previously returned result set.
type ResultHandler struct {
	client *reddit.Client
}

func NewResultHandler(c *reddit.Client) *ResultHandler {
	return &ResultHandler{client: c}
}

// RegisterTools registers the get_result tool.
func (rh *ResultHandler) RegisterTools(s *server.MCPServer) error {
	getResult := mcp.NewTool("get_result",
		mcp.WithDescription("Re-read a result set returned by a previous search, under a different max_text budget, without re-querying any backend. Result sets expire after a few minutes; on \"not found\", run search again."),
		mcp.WithString("result_id", mcp.Required(), mcp.Description("The result_id from a previous search response")),
		mcp.WithNumber("max_text", mcp.Description("Character budget per text field, 0 = unlimited (default 0)")),
	)
	s.AddTool(getResult, rh.handleGetResult)
	return nil
}

func (rh *ResultHandler) handleGetResult(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resultID, err := req.RequireString("result_id")
	if err != nil {
		return mcp.NewToolResultError("result_id is required"), nil
	}
	maxText := intArg(req, "max_text", 0)

	resp, err := rh.client.GetResult(resultID, maxText)
	if err != nil {
		if errors.Is(err, reddit.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("result %s not found (expired or evicted); run search again", resultID)), nil
		}
		log.Error().Err(err).Str("result_id", resultID).Msg("get_result failed")
		return mcp.NewToolResultError(fmt.Sprintf("get_result failed: %v", err)), nil
	}

	log.Debug().Str("result_id", resultID).Int("count", resp.Count).Msg("get_result completed")

	b, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
