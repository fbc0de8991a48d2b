package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"pdfchat/src/log"
	"pdfchat/src/pdfutil"
)

// ErrEmbedderUnavailable indicates the local embedding backend cannot be
// reached at all, as opposed to a failure while computing embeddings. Callers
// use it to show an actionable message.
var ErrEmbedderUnavailable = errors.New("embedding model is unavailable")

const defaultTopK = 4

// Options tunes the processing pipeline.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

// Service turns uploaded documents into ready-to-ask conversations: extract
// text, chunk it, embed and index the chunks, wrap the index together with
// the chat model.
type Service struct {
	embedder EmbeddingClient
	llm      llms.Model
	chunker  Chunker
	topK     int
}

func NewService(embedder EmbeddingClient, llm llms.Model, opts Options) *Service {
	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Service{
		embedder: embedder,
		llm:      llm,
		chunker:  NewChunker(opts.ChunkSize, opts.ChunkOverlap),
		topK:     topK,
	}
}

// BuildConversation runs the pipeline over the given documents. Documents
// that fail to parse are reported in the returned warnings without failing
// the run. The returned error wraps ErrEmbedderUnavailable when the
// embedding backend cannot be reached.
func (s *Service) BuildConversation(ctx context.Context, docs []pdfutil.Document) (*Conversation, []string, error) {
	if err := s.embedder.Check(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEmbedderUnavailable, err)
	}

	text, warnings := pdfutil.Extract(docs)
	chunks := s.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, warnings, fmt.Errorf("no text could be extracted from the uploaded documents")
	}

	log.Info("indexing documents", "documents", len(docs), "chunks", len(chunks))

	index, err := buildIndex(ctx, s.embedder, chunks, s.topK)
	if err != nil {
		return nil, warnings, err
	}

	return NewConversation(index, s.llm), warnings, nil
}
