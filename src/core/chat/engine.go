package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
)

// answerTemplate has the two slots every question is asked with: the
// retrieved document context and the literal user question.
const answerTemplate = `You are an expert PDF assistant. Use the following context to answer questions accurately.
Provide clear, concise responses. If unsure, say so.

{{.context}}
Question: {{.question}}
Answer:`

// Retriever returns the stored chunks most relevant to a query.
type Retriever interface {
	RelevantChunks(ctx context.Context, query string) ([]string, error)
}

// Conversation answers questions against one document index, replaying the
// dialogue so far into every model call. It is built once per successful
// processing run and replaced wholesale by the next one, so its memory
// starts empty whenever the underlying index changes.
type Conversation struct {
	retriever Retriever
	llm       llms.Model
	prompt    prompts.PromptTemplate
	history   *memory.ChatMessageHistory
}

func NewConversation(retriever Retriever, llm llms.Model) *Conversation {
	return &Conversation{
		retriever: retriever,
		llm:       llm,
		prompt: prompts.PromptTemplate{
			Template:       answerTemplate,
			InputVariables: []string{"context", "question"},
			TemplateFormat: prompts.TemplateFormatGoTemplate,
		},
		history: memory.NewChatMessageHistory(),
	}
}

// Ask retrieves context for the question, renders the prompt, prepends the
// buffered prior turns and calls the model. The buffer is only extended when
// the call succeeds, so a failed ask leaves no trace.
func (c *Conversation) Ask(ctx context.Context, question string) (string, error) {
	chunks, err := c.retriever.RelevantChunks(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}

	rendered, err := c.prompt.Format(map[string]any{
		"context":  strings.Join(chunks, "\n\n"),
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	past, err := c.history.Messages(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load chat history: %w", err)
	}

	messages := make([]llms.MessageContent, 0, len(past)+1)
	for _, m := range past {
		role := llms.ChatMessageTypeHuman
		if m.GetType() == llms.ChatMessageTypeAI {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.GetContent()))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, rendered))

	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	answer := resp.Choices[0].Content

	if err := c.history.AddUserMessage(ctx, question); err != nil {
		return "", fmt.Errorf("failed to record question: %w", err)
	}
	if err := c.history.AddAIMessage(ctx, answer); err != nil {
		return "", fmt.Errorf("failed to record answer: %w", err)
	}

	return answer, nil
}
