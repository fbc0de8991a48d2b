package ollama

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
)

// Client adapts the Ollama API client to what the chat pipeline needs from
// an embedding backend: batch embedding plus a reachability probe.
type Client struct {
	api   *api.Client
	model string
}

func NewClient(apiClient *api.Client, model string) *Client {
	return &Client{api: apiClient, model: model}
}

// Check probes the server. It distinguishes "ollama is not running" from
// failures while computing embeddings.
func (c *Client) Check(ctx context.Context) error {
	if _, err := c.api.Version(ctx); err != nil {
		return fmt.Errorf("ollama is unreachable: %w", err)
	}
	return nil
}

// Embed returns one embedding per input, in input order.
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	resp, err := c.api.Embed(ctx, &api.EmbedRequest{
		Model: c.model,
		Input: inputs,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Embeddings) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Embeddings))
	}
	return resp.Embeddings, nil
}
