package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// RSSSource is one RSS feed with its display name and stable id.
type RSSSource struct {
	URL  string
	Name string
	ID   string
}

// RSSSourceList decodes from "url|name|id,url|name|id" env values.
type RSSSourceList []RSSSource

func (l *RSSSourceList) Decode(value string) error {
	if strings.TrimSpace(value) == "" {
		*l = nil
		return nil
	}
	var sources []RSSSource
	for _, entry := range strings.Split(value, ",") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) != 3 {
			return fmt.Errorf("invalid RSS source %q, expected url|name|id", entry)
		}
		sources = append(sources, RSSSource{URL: parts[0], Name: parts[1], ID: parts[2]})
	}
	*l = sources
	return nil
}

// NewsAPIConfig holds headline API settings.
type NewsAPIConfig struct {
	APIKey     string        `envconfig:"NEWS_API_KEY" required:"true"`
	BaseURL    string        `envconfig:"NEWS_API_BASE_URL" default:"https://newsapi.org/v2"`
	Timeout    time.Duration `envconfig:"NEWS_API_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"NEWS_API_MAX_RETRIES" default:"3"`
}

// LLMConfig holds LLM provider settings. OpenAI calls are metered by the
// daily rate limiter; Anthropic calls are not.
type LLMConfig struct {
	Provider        string        `envconfig:"LLM_PROVIDER"`
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIModel     string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	AnthropicModel  string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-latest"`
	Temperature     float64       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	MaxTokens       int64         `envconfig:"LLM_MAX_TOKENS" default:"100"`
	Timeout         time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	DailyCallLimit  int           `envconfig:"OPENAI_DAILY_CALL_LIMIT" default:"20"`
}

// MongoConfig holds persistence settings.
type MongoConfig struct {
	URI            string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017/news_sentiment"`
	Database       string        `envconfig:"MONGODB_DATABASE" default:"news_sentiment"`
	ConnectTimeout time.Duration `envconfig:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `envconfig:"API_HOST" default:"0.0.0.0"`
	Port        int      `envconfig:"API_PORT" default:"8000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	CronSecret  string   `envconfig:"CRON_SECRET"`
	Environment string   `envconfig:"ENV" default:"development"`
}

// SourcesConfig lists the news sources per side.
type SourcesConfig struct {
	HeadlinesPerSide int           `envconfig:"HEADLINES_PER_SIDE" default:"20"`
	Conservative     []string      `envconfig:"CONSERVATIVE_SOURCES" default:"breitbart-news,the-blaze,national-review"`
	Liberal          []string      `envconfig:"LIBERAL_SOURCES" default:"cnn,msnbc,the-new-york-times,washington-post,the-guardian,npr"`
	ConservativeRSS  RSSSourceList `envconfig:"CONSERVATIVE_RSS" default:"https://www.newsmax.com/rss/Newsfront/16|Newsmax|newsmax,https://www.newsmax.com/rss/Politics/1|Newsmax Politics|newsmax-politics"`
	LiberalRSS       RSSSourceList `envconfig:"LIBERAL_RSS"`
}

// PuffPieceConfig controls the uplifting-keyword score boost.
type PuffPieceConfig struct {
	Keywords        []string `envconfig:"PUFF_KEYWORDS" default:"heartwarming,inspiring,rescue,hero,cute,adorable,kind,community,hope,smile,joy,volunteer,puppy,kitten,baby,wedding,graduation,surprise,reunion,generous,charity,donation,helping,saved,miracle"`
	BoostMultiplier float64  `envconfig:"PUFF_BOOST_MULTIPLIER" default:"0.5"`
}

// CacheConfig controls the daily-comparison read cache.
type CacheConfig struct {
	Enabled  bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTLToday time.Duration `envconfig:"CACHE_TTL_TODAY" default:"5m"`
	TTLPast  time.Duration `envconfig:"CACHE_TTL_PAST" default:"24h"`
}

// LocalModelConfig points at the optional on-disk ONNX sentiment model.
type LocalModelConfig struct {
	Enabled     bool   `envconfig:"LOCAL_MODEL_ENABLED" default:"false"`
	ModelPath   string `envconfig:"LOCAL_MODEL_PATH" default:"models/sentiment.onnx"`
	VocabPath   string `envconfig:"LOCAL_MODEL_VOCAB_PATH" default:"models/vocab.txt"`
	LibraryPath string `envconfig:"ONNX_SHARED_LIBRARY_PATH"`
}

type Config struct {
	NewsAPI    NewsAPIConfig
	LLM        LLMConfig
	Mongo      MongoConfig
	API        APIConfig
	Sources    SourcesConfig
	PuffPieces PuffPieceConfig
	Cache      CacheConfig
	LocalModel LocalModelConfig
}

// Load reads configuration from environment variables. The LLM provider
// defaults to OpenAI when a real-looking key is present, otherwise
// Anthropic; an explicit LLM_PROVIDER always wins.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		if strings.HasPrefix(cfg.LLM.OpenAIAPIKey, "sk-") {
			cfg.LLM.Provider = "openai"
		} else {
			cfg.LLM.Provider = "anthropic"
		}
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when provider is 'openai'")
		}
	case "anthropic":
		if cfg.LLM.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when provider is 'anthropic'")
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}

	return &cfg, nil
}

// IsProduction reports whether the API should suppress internal error detail.
func (c *Config) IsProduction() bool {
	return c.API.Environment == "production"
}
