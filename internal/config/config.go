package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds the runtime configuration of the booking API.  Each field
// corresponds to an environment variable.  Strings are used for identifiers
// and secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time‑to‑live in minutes
	RefreshTTLDays int    // refresh token time‑to‑live in days
	BcryptCost     int    // bcrypt cost for password hashing
	CRMURL         string // base URL of the CRM/facilitator API
	CRMBearerToken string // static bearer token expected by the CRM API
}

// CRMConfig holds the runtime configuration of the CRM/facilitator API.
// The CRM service keeps its own database; the two stores are deliberately
// decoupled and correlated only by external IDs.
type CRMConfig struct {
	Env         string // application environment
	Port        string // HTTP port to listen on
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	BearerToken string // static bearer token required on inbound requests
	BcryptCost  int    // bcrypt cost for facilitator password hashing
}

// Load reads the booking API configuration from environment variables.
// Required variables are enforced by must(); missing values cause the
// program to exit with a fatal log message.  CRM_URL and CRM_BEARER_TOKEN
// carry local development defaults so the two services can talk to each
// other out of the box.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		CRMURL:         getenv("CRM_URL", "http://localhost:5001"),
		CRMBearerToken: getenv("CRM_BEARER_TOKEN", "crm-secret-token-12345"),
	}
}

// LoadCRM reads the CRM API configuration.  The CRM database variables are
// prefixed with CRM_DB_ so both services can share a single .env file.
func LoadCRM() CRMConfig {
	return CRMConfig{
		Env:         must("APP_ENV"),
		Port:        must("CRM_PORT"),
		DBUser:      must("CRM_DB_USER"),
		DBPass:      os.Getenv("CRM_DB_PASS"),
		DBHost:      must("CRM_DB_HOST"),
		DBPort:      must("CRM_DB_PORT"),
		DBName:      must("CRM_DB_NAME"),
		BearerToken: getenv("CRM_BEARER_TOKEN", "crm-secret-token-12345"),
		BcryptCost:  mustInt("BCRYPT_COST"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the value of an environment variable or the provided
// default when the variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
