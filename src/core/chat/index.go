package chat

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
)

// EmbeddingClient produces vector embeddings through a local model server.
type EmbeddingClient interface {
	// Check reports whether the embedding backend is reachable.
	Check(ctx context.Context) error
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

const collectionName = "chunks"

// Index is an in-memory similarity index over the chunks of one processing
// run. It is rebuilt from scratch on every run and owned by exactly one
// conversation; replacing the conversation discards it.
type Index struct {
	collection *chromem.Collection
	topK       int
}

func buildIndex(ctx context.Context, embedder EmbeddingClient, chunks []string, topK int) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}

	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d vectors for %d chunks", len(vectors), len(chunks))
	}

	// queries go through the same embedder, one text at a time
	queryEmbed := func(ctx context.Context, text string) ([]float32, error) {
		vs, err := embedder.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		return vs[0], nil
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, queryEmbed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:        strconv.Itoa(i),
			Content:   chunk,
			Embedding: vectors[i],
		}
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %w", err)
	}

	return &Index{collection: collection, topK: topK}, nil
}

// RelevantChunks returns the contents of the top-k stored chunks most similar
// to the query, k clamped to the collection size.
func (idx *Index) RelevantChunks(ctx context.Context, query string) ([]string, error) {
	k := idx.topK
	if count := idx.collection.Count(); k > count {
		k = count
	}
	results, err := idx.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	contents := make([]string, len(results))
	for i, r := range results {
		contents[i] = r.Content
	}
	return contents, nil
}
