package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	RecordStoreDynamoDB = "dynamodb"
	RecordStorePostgres = "postgres"
)

// Config is read from the process environment. A .env file in the working
// directory is loaded first by the commands (godotenv/autoload).
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	StartURL      string `env:"START_URL" envDefault:"/"`

	RecordStore string `env:"RECORD_STORE" envDefault:"dynamodb"`
	DatabaseURI string `env:"DATABASE_URI"`

	AWS AWSConfig

	QuoteTTL             time.Duration `env:"QUOTE_TTL" envDefault:"168h"`
	GeometryPollTimeout  time.Duration `env:"GEOMETRY_POLL_TIMEOUT" envDefault:"10s"`
	GeometryPollInterval time.Duration `env:"GEOMETRY_POLL_INTERVAL" envDefault:"500ms"`
	ExtractionDelay      time.Duration `env:"EXTRACTION_DELAY" envDefault:"6s"`

	MercadoPagoAccessToken string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     bool   `env:"PAYMENT_GATEWAY_MOCK" envDefault:"false"`
	Currency               string `env:"CURRENCY" envDefault:"EUR"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
}

// AWSConfig holds local-friendly AWS settings. Endpoints are optional and
// point the SDK at DynamoDB Local / MinIO style emulators.
type AWSConfig struct {
	Region           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3Bucket         string `env:"S3_BUCKET" envDefault:"cad-uploads"`

	FilesTable     string `env:"FILES_TABLE" envDefault:"files"`
	QuotesTable    string `env:"QUOTES_TABLE" envDefault:"quotes"`
	OrdersTable    string `env:"ORDERS_TABLE" envDefault:"orders"`
	MaterialsTable string `env:"MATERIALS_TABLE" envDefault:"materials"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.RecordStore = strings.ToLower(strings.TrimSpace(c.RecordStore))
	switch c.RecordStore {
	case RecordStoreDynamoDB:
	case RecordStorePostgres:
		if c.DatabaseURI == "" {
			return fmt.Errorf("ENV DATABASE_URI must be set when RECORD_STORE=%s", RecordStorePostgres)
		}
	default:
		return fmt.Errorf("ENV RECORD_STORE must be %q or %q, got %q", RecordStoreDynamoDB, RecordStorePostgres, c.RecordStore)
	}
	if c.GeometryPollInterval <= 0 || c.GeometryPollTimeout <= 0 {
		return fmt.Errorf("geometry poll timeout and interval must be positive")
	}
	if c.ExtractionDelay < 0 {
		return fmt.Errorf("ENV EXTRACTION_DELAY must not be negative")
	}
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	return nil
}

// CompletionURL is where the payment provider sends the customer back to
// after paying for orderID.
func (c *Config) CompletionURL(orderID string) string {
	return fmt.Sprintf("%s/api/orders/%s/completion", c.PublicBaseURL, orderID)
}
