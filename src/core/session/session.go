package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"

	"pdfchat/src/pdfutil"
)

var (
	// ErrNotFound is returned for unknown or expired session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrNoDocuments is returned when processing is requested with nothing staged.
	ErrNoDocuments = errors.New("please upload PDF files to begin")
	// ErrNotReady is returned when a question arrives before a successful processing run.
	ErrNotReady = errors.New("no processed documents to chat with")
)

// Conversation answers questions about one processed document set.
type Conversation interface {
	Ask(ctx context.Context, question string) (string, error)
}

// PipelineFunc builds a conversation from staged documents, returning
// non-fatal extraction warnings alongside it.
type PipelineFunc func(ctx context.Context, docs []pdfutil.Document) (Conversation, []string, error)

// Speakers as rendered in the transcript.
const (
	SpeakerUser = "You"
	SpeakerBot  = "Bot"
)

// Turn is one transcript entry.
type Turn struct {
	ID      string `json:"id"`
	Speaker string `json:"speaker"`
	Message string `json:"message"`
}

// Snapshot is the read view handed to the UI.
type Snapshot struct {
	ID      string `json:"id"`
	Ready   bool   `json:"ready"`
	Staged  int    `json:"staged"`
	History []Turn `json:"history"`
}

// Session owns the state of one browser session: staged uploads, the current
// conversation and the visible transcript. Its mutex serializes processing
// and questions, so a question can never run against an index mid-rebuild.
type Session struct {
	ID string

	mu           sync.Mutex
	staged       []pdfutil.Document
	conversation Conversation
	processed    bool
	transcript   []Turn

	// lastActive lives outside the mutex: the manager's sweeper reads it
	// while the mutex may be held across a remote model call.
	lastActive atomic.Int64

	build          PipelineFunc
	node           *snowflake.Node
	resetOnProcess bool
}

// Stage adds uploaded documents to the set the next Process run will consume.
// It returns the number of documents now staged.
func (s *Session) Stage(docs []pdfutil.Document) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.staged = append(s.staged, docs...)
	return len(s.staged)
}

// Process runs the pipeline over the staged documents. On success the
// previous conversation (and its index) is replaced, the staged set is
// consumed and the extraction warnings are returned. On failure nothing
// changes: the prior conversation, transcript and processed flag all keep
// their values, and the staged documents remain for a retry.
func (s *Session) Process(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if len(s.staged) == 0 {
		return nil, ErrNoDocuments
	}

	conversation, warnings, err := s.build(ctx, s.staged)
	if err != nil {
		return warnings, err
	}

	s.conversation = conversation
	s.processed = true
	s.staged = nil
	if s.resetOnProcess {
		s.transcript = nil
	}
	return warnings, nil
}

// Ask forwards the question to the current conversation. A successful answer
// appends the question and the answer to the transcript, in that order; a
// failed one appends nothing.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if !s.processed || s.conversation == nil {
		return "", ErrNotReady
	}

	answer, err := s.conversation.Ask(ctx, question)
	if err != nil {
		return "", err
	}

	s.transcript = append(s.transcript,
		Turn{ID: s.node.Generate().String(), Speaker: SpeakerUser, Message: question},
		Turn{ID: s.node.Generate().String(), Speaker: SpeakerBot, Message: answer},
	)
	return answer, nil
}

// History returns a copy of the transcript, oldest turn first.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.transcript...)
}

// Snapshot returns the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:      s.ID,
		Ready:   s.processed,
		Staged:  len(s.staged),
		History: append([]Turn(nil), s.transcript...),
	}
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}
