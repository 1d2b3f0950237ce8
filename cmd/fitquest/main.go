package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/fabianfernandess/FitQuest/internal/api"
	"github.com/fabianfernandess/FitQuest/internal/coach"
	"github.com/fabianfernandess/FitQuest/internal/genai"
	"github.com/fabianfernandess/FitQuest/internal/store"
	"github.com/fabianfernandess/FitQuest/internal/util"
	"github.com/joho/godotenv"
)

// Provider backend identifiers accepted by -provider / $FITQUEST_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

func main() {
	config := loadEnvironmentConfig()
	initializeLogger(config.Debug)

	flags := parseCommandLineFlags(config)

	generator, err := buildGenerator(flags, config)
	if err != nil {
		slog.Error("Failed to initialize provider gateway", "error", err)
		os.Exit(1)
	}

	st, err := buildStore(*flags.dbDSN)
	if err != nil {
		slog.Error("Failed to initialize chat store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	apiOpts := []api.Option{api.WithAddr(*flags.apiAddr)}
	if config.CORSAllowAll {
		apiOpts = append(apiOpts, api.WithAllowAllOrigins())
	}

	server := api.NewServer(coach.NewCoach(generator), coach.NewClassifier(generator), st, apiOpts...)

	slog.Info("Bootstrapping FitQuest", "provider", *flags.provider, "model", *flags.model, "addr", *flags.apiAddr)
	if err := server.Run(); err != nil {
		slog.Error("FitQuest failed to run", "error", err)
		os.Exit(1)
	}
}

// Config holds environment configuration
type Config struct {
	Provider     string
	Model        string
	OpenAIKey    string
	GeminiKey    string
	DatabaseURL  string
	APIAddr      string
	Timeout      time.Duration
	Debug        bool
	CORSAllowAll bool
}

// Flags holds command line flag values
type Flags struct {
	provider  *string
	model     *string
	openaiKey *string
	geminiKey *string
	dbDSN     *string
	apiAddr   *string
}

// initializeLogger sets up structured logging
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	config := Config{
		Provider:     os.Getenv("FITQUEST_PROVIDER"),
		Model:        os.Getenv("FITQUEST_MODEL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		APIAddr:      os.Getenv("API_ADDR"),
		Timeout:      util.ParseDurationEnv("FITQUEST_PROVIDER_TIMEOUT", genai.DefaultTimeout),
		Debug:        util.ParseBoolEnv("FITQUEST_DEBUG", false),
		CORSAllowAll: util.ParseBoolEnv("FITQUEST_CORS_ALL", false),
	}

	if config.Provider == "" {
		config.Provider = ProviderOpenAI
	}
	if config.APIAddr == "" {
		config.APIAddr = api.DefaultAddr
	}
	return config
}

// parseCommandLineFlags parses command line flags with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		provider:  flag.String("provider", config.Provider, "generative-text backend: openai or gemini (overrides $FITQUEST_PROVIDER)"),
		model:     flag.String("model", config.Model, "model identifier (overrides $FITQUEST_MODEL)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		geminiKey: flag.String("gemini-api-key", config.GeminiKey, "Gemini API key (overrides $GEMINI_API_KEY)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "chat store DSN: Postgres URL or SQLite file path (overrides $DATABASE_URL)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}
	flag.Parse()
	return flags
}

// buildGenerator constructs the configured provider gateway.
func buildGenerator(flags Flags, config Config) (genai.Generator, error) {
	opts := []genai.Option{genai.WithTimeout(config.Timeout)}
	if *flags.model != "" {
		opts = append(opts, genai.WithModel(*flags.model))
	}

	switch *flags.provider {
	case ProviderGemini:
		if *flags.geminiKey != "" {
			opts = append(opts, genai.WithAPIKey(*flags.geminiKey))
		}
		return genai.NewGeminiClient(opts...)
	default:
		if *flags.openaiKey != "" {
			opts = append(opts, genai.WithAPIKey(*flags.openaiKey))
		}
		return genai.NewClient(opts...)
	}
}

// buildStore constructs the chat store for the given DSN. An empty DSN
// selects the in-memory store, which loses history on restart.
func buildStore(dsn string) (store.Store, error) {
	if dsn == "" {
		slog.Warn("No chat store DSN configured, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Using Postgres chat store")
		return store.NewPostgresStore(store.WithDSN(dsn))
	}
	slog.Debug("Using SQLite chat store", "path", dsn)
	return store.NewSQLiteStore(store.WithDSN(dsn))
}
