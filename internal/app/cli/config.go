package cli

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the marketplace process.
type Config struct {
	UsersFile    string
	ProductsFile string
	PostgresDSN  string
}

// LoadConfig reads environment variables and applies defaults. The only
// required configuration is the location of the two aggregate files; a
// PostgreSQL DSN switches persistence to the database adapters.
func LoadConfig() Config {
	return Config{
		UsersFile:    envDefault("MARKET_USERS_FILE", "users.json"),
		ProductsFile: envDefault("MARKET_PRODUCTS_FILE", "products.json"),
		PostgresDSN:  strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
