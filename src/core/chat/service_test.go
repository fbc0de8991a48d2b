package chat

import (
	"context"
	"errors"
	"testing"

	"pdfchat/src/pdfutil"
)

func TestBuildConversationEmbedderUnavailable(t *testing.T) {
	embedder := &stubEmbedder{checkErr: errors.New("connection refused")}
	svc := NewService(embedder, nil, Options{})

	docs := []pdfutil.Document{{Name: "a.pdf", Data: []byte("irrelevant")}}
	_, _, err := svc.BuildConversation(context.Background(), docs)
	if !errors.Is(err, ErrEmbedderUnavailable) {
		t.Fatalf("BuildConversation() error = %v, want ErrEmbedderUnavailable", err)
	}
}

func TestBuildConversationNoText(t *testing.T) {
	svc := NewService(corpusEmbedder(), nil, Options{})

	// unparsable input yields a warning and, with no other documents, no text
	docs := []pdfutil.Document{{Name: "broken.pdf", Data: []byte("not a pdf")}}
	_, warnings, err := svc.BuildConversation(context.Background(), docs)
	if err == nil {
		t.Fatal("BuildConversation() succeeded with no extractable text, want error")
	}
	if errors.Is(err, ErrEmbedderUnavailable) {
		t.Fatalf("BuildConversation() error = %v, want a generic processing error", err)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(corpusEmbedder(), nil, Options{})
	if svc.topK != defaultTopK {
		t.Errorf("topK = %d, want %d", svc.topK, defaultTopK)
	}
	if svc.chunker.Size != defaultChunkSize || svc.chunker.Overlap != defaultChunkOverlap {
		t.Errorf("chunker = %+v, want defaults", svc.chunker)
	}
}
