package config // package config loads application configuration from environment variables

import (
    "os"
    "strconv"
    "time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Every variable has a hardcoded fallback default
// so the server can start in a development environment with no .env file.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign access tokens
    AccessTTLMin int    // access token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables, falling back
// to the documented defaults when a variable is unset.
func Load() Config {
    return Config{
        Env:          envStr("APP_ENV", "dev"),
        Port:         envStr("APP_PORT", "3000"),
        DBUser:       envStr("DB_USER", "root"),
        DBPass:       os.Getenv("DB_PASS"), // empty allowed
        DBHost:       envStr("DB_HOST", "127.0.0.1"),
        DBPort:       envStr("DB_PORT", "3306"),
        DBName:       envStr("DB_NAME", "vr_rental"),
        JWTSecret:    envStr("JWT_SECRET", "dev-secret-change-me"),
        AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
        BcryptCost:   envInt("BCRYPT_COST", 10),
    }
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    switch v {
    case "1", "true", "TRUE", "True", "yes", "on":
        return true
    case "0", "false", "FALSE", "False", "no", "off":
        return false
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
