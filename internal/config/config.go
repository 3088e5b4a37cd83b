package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// Identity provider token verification material. Either an HMAC secret
	// or a PEM-encoded RSA/ECDSA public key, depending on the algorithm the
	// provider signs with.
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Content generator settings
	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqBaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel   string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`

	// Outside development, secrets left blank above are resolved from
	// GCP Secret Manager under this project.
	GCPProjectID string `envconfig:"GCP_PROJECT_ID"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
