package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Secrets struct {
	Alpaca AlpacaSecrets
}

type AlpacaSecrets struct {
	ApiKey    string
	ApiSecret string
	Endpoint  string
}

func (s AlpacaSecrets) IsSet() bool {
	return s.ApiKey != "" && s.ApiSecret != ""
}

func secretsFile() string {
	switch strings.ToLower(os.Getenv("SIM_ENV")) {
	case "dev":
		return ".env.dev"
	case "test":
		return ".env.test"
	}
	return ".env"
}

// LoadSecrets reads provider credentials from the environment. A dotenv
// file matching SIM_ENV is loaded first if present; variables already set
// in the environment win.
func LoadSecrets() (*Secrets, error) {
	err := godotenv.Load(secretsFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", secretsFile(), err)
	}

	return &Secrets{
		Alpaca: AlpacaSecrets{
			ApiKey:    os.Getenv("ALPACA_API_KEY"),
			ApiSecret: os.Getenv("ALPACA_API_SECRET"),
			Endpoint:  os.Getenv("ALPACA_DATA_ENDPOINT"),
		},
	}, nil
}
