package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Map environment variables to Viper keys for the DeepSeek chat API
	viper.BindEnv("deepseek.api_key", "DEEPSEEK_API_KEY")
	viper.BindEnv("deepseek.base_url", "DEEPSEEK_BASE_URL")
	viper.BindEnv("deepseek.model", "DEEPSEEK_MODEL")

	// Map environment variables to Viper keys for the embedding backend
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("embedding.model", "EMBEDDING_MODEL")

	// Map environment variables to Viper keys for chat behaviour
	viper.BindEnv("chat.chunk_size", "CHAT_CHUNK_SIZE")
	viper.BindEnv("chat.chunk_overlap", "CHAT_CHUNK_OVERLAP")
	viper.BindEnv("chat.top_k", "CHAT_TOP_K")
	viper.BindEnv("chat.reset_history_on_process", "CHAT_RESET_HISTORY_ON_PROCESS")
	viper.BindEnv("session.max_idle", "SESSION_MAX_IDLE")

	// Set default values for the server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Set default values for the DeepSeek chat API
	viper.SetDefault("deepseek.api_key", "")
	viper.SetDefault("deepseek.base_url", "https://api.deepseek.com/v1")
	viper.SetDefault("deepseek.model", "deepseek-chat")

	// Set default values for the embedding backend
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("embedding.model", "nomic-embed-text")

	// Set default values for chat behaviour
	viper.SetDefault("chat.chunk_size", 1500)
	viper.SetDefault("chat.chunk_overlap", 300)
	viper.SetDefault("chat.top_k", 4)
	viper.SetDefault("chat.reset_history_on_process", false)
	viper.SetDefault("session.max_idle", "30m")
}
