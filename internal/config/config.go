package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

var ErrMissingCredential = errors.New("model API credential is required")

type Config struct {
	App       AppConfig
	Interview InterviewConfig
	Storage   StorageConfig
	Model     ModelConfig
	Server    ServerConfig
	Session   SessionConfig
	Database  DatabaseConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Title string `env:"APP_TITLE" envDefault:"TalentScout Hiring Assistant" validate:"required"`
	Icon  string `env:"APP_ICON" envDefault:"🤖"`
}

type InterviewConfig struct {
	MaxBasicQuestions  int    `env:"MAX_BASIC_QUESTIONS" envDefault:"7" validate:"eq=7"`
	MaxTechQuestions   int    `env:"MAX_TECH_QUESTIONS" envDefault:"5" validate:"min=1,max=10"`
	MinAnswerLength    int    `env:"MIN_ANSWER_LENGTH" envDefault:"10" validate:"min=1"`
	MaxExperienceYears int    `env:"MAX_EXPERIENCE_YEARS" envDefault:"50" validate:"min=1"`
	QuestionBankPath   string `env:"QUESTION_BANK_PATH"`
}

type StorageConfig struct {
	DataDir     string `env:"DATA_DIR" envDefault:"data" validate:"required"`
	CSVFilename string `env:"CSV_FILENAME" envDefault:"candidate_data.csv" validate:"required"`
}

type ModelConfig struct {
	Provider      string        `env:"MODEL_PROVIDER" envDefault:"openai" validate:"oneof=openai gemini"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL"`
	Timeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

type ServerConfig struct {
	Port            string `env:"PORT" envDefault:"3000" validate:"required"`
	Env             string `env:"ENV" envDefault:"development"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"30" validate:"min=1"`
}

type SessionConfig struct {
	Store           string        `env:"SESSION_STORE" envDefault:"memory" validate:"oneof=memory redis postgres"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h" validate:"gt=0"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"talentscout"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads .env (if present) and the process environment, then validates
// the result. A missing model credential is reported as ErrMissingCredential.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return Parse()
}

// LoadStorageOnly is Load for commands that only read stored records. The
// model credential is not required.
func LoadStorageOnly() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return ParseStorageOnly()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (*Config, error) {
	cfg, err := ParseStorageOnly()
	if err != nil {
		return nil, err
	}

	if err := cfg.RequireCredential(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseStorageOnly is Parse without the model credential check.
func ParseStorageOnly() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func (c *Config) RequireCredential() error {
	if c.Model.APIKey() == "" {
		return fmt.Errorf("%w: set %s in your .env file", ErrMissingCredential, c.Model.CredentialEnv())
	}

	return nil
}

// APIKey returns the credential of the selected provider.
func (m ModelConfig) APIKey() string {
	if m.Provider == ProviderGemini {
		return m.GeminiAPIKey
	}
	return m.OpenAIAPIKey
}

func (m ModelConfig) CredentialEnv() string {
	if m.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func (m ModelConfig) ModelName() string {
	if m.Provider == ProviderGemini {
		return m.GeminiModel
	}
	return m.OpenAIModel
}

// AssistantName is the first word of the application title.
func (a AppConfig) AssistantName() string {
	if fields := strings.Fields(a.Title); len(fields) > 0 {
		return fields[0]
	}
	return "TalentScout"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
