package config // package config loads application configuration from environment variables

import (
    "log"
    "os"
    "strconv"
)

// Config holds all runtime configuration values. Each field maps to
// one environment variable; database and JWT settings are required,
// the rest fall back to development defaults.
type Config struct {
    Env            string // application environment (dev/test/prod)
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment. Missing required
// variables are fatal; the process exits rather than starting with a
// broken configuration.
func Load() Config {
    return Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("APP_PORT", "8080"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 15),
        RefreshTTLDays: intOr("REFRESH_TOKEN_TTL_DAYS", 30),
        BcryptCost:     intOr("BCRYPT_COST", 12),
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// intOr reads an integer environment variable, falling back to def
// when unset. A value that is present but not numeric is fatal.
func intOr(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("env var %s must be an integer, got %q", key, v)
    }
    return n
}
