package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; everything else
// falls back to a default suitable for local development.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	SessionCookie  string        // name of the cookie carrying the session token
	RequestTimeout time.Duration // deadline on each request's context, applied by the router
	LogLevel       string        // debug, info, warn or error
	LogFormat      string        // json or text
}

// required lists the variables Load refuses to start without.
var required = []string{"APP_ENV", "APP_PORT", "DB_USER", "DB_HOST", "DB_PORT", "DB_NAME"}

// Load reads configuration values from the environment and returns a Config.
// A .env file in the working directory is loaded first when present; values
// already set in the process environment win.  All missing required
// variables are reported together in the returned error.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	var missing []string
	for _, key := range required {
		if v, ok := os.LookupEnv(key); !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	return Config{
		Env:            os.Getenv("APP_ENV"),
		Port:           os.Getenv("APP_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		SessionCookie:  envStr("SESSION_COOKIE_NAME", "sessionToken"),
		RequestTimeout: envDur("REQUEST_TIMEOUT", 5*time.Second),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogFormat:      envStr("LOG_FORMAT", "json"),
	}, nil
}
