package cmd

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ollama/ollama/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmc/langchaingo/llms/openai"

	httpHdlr "pdfchat/handler/http"
	"pdfchat/src/core/chat"
	"pdfchat/src/core/session"
	ollamaembed "pdfchat/src/infrastructure/integrations/ollama"
	"pdfchat/src/log"
	"pdfchat/src/pdfutil"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PDF chat server",
	Long:  `The serve command starts an HTTP server with the web UI and the session API.`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) {
	// Initialize the embedding client against the local Ollama server
	ollamaURL, err := url.Parse(viper.GetString("ollama.url"))
	if err != nil {
		log.Error(err, "Invalid ollama.url")
		return
	}
	embedder := ollamaembed.NewClient(
		api.NewClient(ollamaURL, &http.Client{Timeout: 60 * time.Second}),
		viper.GetString("embedding.model"),
	)

	// Initialize the DeepSeek chat model through the OpenAI-compatible client
	apiKey := viper.GetString("deepseek.api_key")
	if apiKey == "" {
		log.Info("DEEPSEEK_API_KEY is not set, chat completions will fail until it is provided")
		// Keep client construction working; the provider rejects the
		// credential on the first call.
		apiKey = "unset"
	}
	llm, err := openai.New(
		openai.WithBaseURL(viper.GetString("deepseek.base_url")),
		openai.WithToken(apiKey),
		openai.WithModel(viper.GetString("deepseek.model")),
	)
	if err != nil {
		log.Error(err, "Failed to create chat model client")
		return
	}

	// Initialize the processing pipeline
	svc := chat.NewService(embedder, llm, chat.Options{
		ChunkSize:    viper.GetInt("chat.chunk_size"),
		ChunkOverlap: viper.GetInt("chat.chunk_overlap"),
		TopK:         viper.GetInt("chat.top_k"),
	})
	pipeline := func(ctx context.Context, docs []pdfutil.Document) (session.Conversation, []string, error) {
		return svc.BuildConversation(ctx, docs)
	}

	// Initialize the session manager
	manager, err := session.NewManager(pipeline, session.Options{
		ResetHistoryOnProcess: viper.GetBool("chat.reset_history_on_process"),
		MaxIdle:               viper.GetDuration("session.max_idle"),
	})
	if err != nil {
		log.Error(err, "Failed to create session manager")
		return
	}
	defer manager.Close()

	// Setup gin router
	r := gin.Default()

	// Register routes
	handler := httpHdlr.NewHandler(manager)
	handler.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		timeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
