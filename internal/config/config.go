package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Which groups are required
// depends on the selected backends: the REST credential provider
// needs AUTH_BASE_URL/AUTH_API_KEY, the built-in one needs the DB
// and JWT settings, and the directory needs either its REST base URL
// plus project id or the same database.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	AuthBackend string // "rest" (external identity platform) or "local"
	AuthBaseURL string // identity platform base URL (rest backend)
	AuthAPIKey  string // identity platform API key (rest backend)

	DirectoryBackend   string // "rest" or "mysql"
	DirectoryBaseURL   string // directory API base URL (rest backend)
	DirectoryProjectID string // directory project identifier (rest backend)

	SessionTokenFile string // path of the durable session token file
	SessionStore     string // "file" or "redis"

	DBUser string // database username (local/mysql backends)
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret      string // secret used to sign and verify identity tokens (local backend)
	AccessTTLMin   int    // identity token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and
// returns a Config. Only the globally required variables are enforced
// here; backend-specific groups are validated by RequireAuth,
// RequireDirectory and RequireDB once the backend selection is known.
func Load() Config {
	return Config{
		Env:  must("APP_ENV"),  // environment (dev/test/prod)
		Port: must("APP_PORT"), // port to bind the HTTP server

		AuthBackend: getenv("AUTH_BACKEND", "rest"),
		AuthBaseURL: os.Getenv("AUTH_BASE_URL"),
		AuthAPIKey:  os.Getenv("AUTH_API_KEY"),

		DirectoryBackend:   getenv("DIRECTORY_BACKEND", "rest"),
		DirectoryBaseURL:   os.Getenv("DIRECTORY_BASE_URL"),
		DirectoryProjectID: os.Getenv("DIRECTORY_PROJECT_ID"),

		SessionTokenFile: getenv("SESSION_TOKEN_FILE", ".session-token"),
		SessionStore:     getenv("SESSION_STORE", "file"),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: os.Getenv("DB_PORT"),
		DBName: os.Getenv("DB_NAME"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     envInt("BCRYPT_COST", 12),
	}
}

// DirectoryAPIBase composes the full directory API base URL from the
// configured base and project identifier, mirroring the hosted
// platform's URL scheme.
func (c Config) DirectoryAPIBase() string {
	if c.DirectoryProjectID == "" {
		return c.DirectoryBaseURL
	}
	return c.DirectoryBaseURL + "/" + c.DirectoryProjectID + "/us-central1/api/v1"
}

// RequireAuth fatals when the selected credential backend is missing
// its settings.
func (c Config) RequireAuth() {
	switch c.AuthBackend {
	case "rest":
		if c.AuthBaseURL == "" {
			log.Fatal("AUTH_BACKEND=rest requires AUTH_BASE_URL")
		}
	case "local":
		if c.JWTSecret == "" {
			log.Fatal("AUTH_BACKEND=local requires JWT_SECRET")
		}
	default:
		log.Fatalf("unknown AUTH_BACKEND: %q", c.AuthBackend)
	}
}

// RequireDirectory fatals when the selected directory backend is
// missing its settings.
func (c Config) RequireDirectory() {
	switch c.DirectoryBackend {
	case "rest":
		if c.DirectoryBaseURL == "" {
			log.Fatal("DIRECTORY_BACKEND=rest requires DIRECTORY_BASE_URL")
		}
	case "mysql":
		c.RequireDB()
	default:
		log.Fatalf("unknown DIRECTORY_BACKEND: %q", c.DirectoryBackend)
	}
}

// RequireDB fatals when the database settings are incomplete.
func (c Config) RequireDB() {
	if c.DBUser == "" || c.DBHost == "" || c.DBPort == "" || c.DBName == "" {
		log.Fatal("database backends require DB_USER, DB_HOST, DB_PORT and DB_NAME")
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or a default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an integer variable, falling back to a default on
// missing or malformed values.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
