package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	RedisURL          string
	JWTSecret         string
	JWTExpiresMinutes int
	CORSOrigins       []string
	DemoUsername      string
	DemoPassword      string
	StaticDir         string
	SeedOnStart       bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := viper.GetString("ENV")
	if env == "" {
		env = "development"
	}
	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}

	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	expires := viper.GetInt("JWT_EXPIRES_MINUTES")
	if expires <= 0 {
		expires = 60
	}

	origins := viper.GetString("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	var originList []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			originList = append(originList, o)
		}
	}

	username := viper.GetString("DEMO_USERNAME")
	if username == "" {
		username = "demo"
	}
	password := viper.GetString("DEMO_PASSWORD")
	if password == "" {
		password = "1234"
	}

	// Postgres DSN in deployment; a sqlite path is the dev fallback.
	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = "data/app.db"
	}

	return &Config{
		Env:               env,
		Port:              port,
		DatabaseURL:       dbURL,
		RedisURL:          viper.GetString("REDIS_URL"),
		JWTSecret:         secret,
		JWTExpiresMinutes: expires,
		CORSOrigins:       originList,
		DemoUsername:      username,
		DemoPassword:      password,
		StaticDir:         viper.GetString("STATIC_DIR"),
		SeedOnStart:       viper.GetBool("SEED_ON_START"),
	}, nil
}
