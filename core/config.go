package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug            bool
	TestMode         bool
	Env              string // DEV (default), TEST, QA, PROD
	AppName          string
	SecretKey        []byte
	FrontendBaseURL  string
	DefaultFromEmail string
	SendgridAPIKey   string
	RollbarToken     string
	Build            string

	JWTExpirationDelta        time.Duration
	PasswordResetTimeoutDelta time.Duration

	UploadDir string

	Server struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	Database struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
}

func (conf *Config) DefaultFromEmailAddr() mail.Address {
	return mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail}
}

func (conf *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
}

func (conf *Config) DatabaseAddress() string {
	return fmt.Sprintf("%s:%d", conf.Database.Host, conf.Database.Port)
}

// NewConfig loads the app configuration from the environment, optionally
// backed by a config/.env.<env> file. Env vars are prefixed with the
// current ENV name, eg. DEV_SECRETKEY.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Campus")
	v.SetDefault("secretKey", "z#2f)y8_ce&g0d$kqw5mr!vn4(ju7=xh9+tb^s3lp6a%o1iq")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("passwordResetTimeoutDelta", 24*time.Hour)
	v.SetDefault("uploadDir", "uploads")
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", 5432)
	v.SetDefault("databaseName", "campus")
	v.SetDefault("databaseDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Build:            v.GetString("build"),

		JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),

		UploadDir: v.GetString("uploadDir"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetInt("serverPort")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Database.Engine = v.GetString("databaseEngine")
	conf.Database.Host = v.GetString("databaseHost")
	conf.Database.Port = v.GetInt("databasePort")
	conf.Database.Name = v.GetString("databaseName")
	conf.Database.User = v.GetString("databaseUser")
	conf.Database.Password = v.GetString("databasePassword")
	conf.Database.AdminUser = v.GetString("databaseAdminUser")
	conf.Database.AdminPassword = v.GetString("databaseAdminPassword")
	conf.Database.DisableTLS = v.GetBool("databaseDisableTLS")
	return conf
}
