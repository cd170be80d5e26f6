package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr   = ":3000"
	DefaultStaticDir    = "./static"
	DefaultCookieName   = "sid"
	DefaultCookieMaxAge = 24 * time.Hour
)

type MongoConfig struct {
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	URI      string `mapstructure:"uri"`
}

type SessionConfig struct {
	SessionMaxAge  time.Duration `mapstructure:"sessionMaxAge"`
	CookieName     string        `mapstructure:"cookieName"`
	CookieHttpOnly bool          `mapstructure:"cookieHttpOnly"`
	CookieSecure   bool          `mapstructure:"cookieSecure"`
}

type Config struct {
	Debug            bool          `mapstructure:"debug"`
	SiteName         string        `mapstructure:"siteName"`
	ListenAddr       string        `mapstructure:"listenAddr"`
	StaticDir        string        `mapstructure:"staticDir"`
	TemplateDir      string        `mapstructure:"templateDir"`
	GmailEmail       string        `mapstructure:"gmailEmail" validate:"required,email"`
	GmailAppPassword string        `mapstructure:"gmailAppPassword" validate:"required"`
	Mongo            MongoConfig   `mapstructure:"mongo"`
	Session          SessionConfig `mapstructure:"session"`
}

func (c *Config) Sanitize() error {
	if c.SiteName == "" {
		c.SiteName = "stmail"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.SessionMaxAge == 0 {
		c.Session.SessionMaxAge = DefaultCookieMaxAge
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = fmt.Sprintf("mongodb+srv://%s:%s@cluster0.mongodb.net/?retryWrites=true&w=majority",
			url.QueryEscape(c.Mongo.Username), url.QueryEscape(c.Mongo.Password))
	}
	return nil
}

// LoadConfig reads the optional YAML config file and the environment. The four
// credentials (GMAIL_EMAIL, GMAIL_APP_PASSWORD, MONGODB_USERNAME,
// MONGODB_PASSWORD) are required; a missing one fails the load.
func LoadConfig(filename string) (*Config, error) {
	// .env is a convenience for local runs, absence is fine
	godotenv.Load()

	viper.Reset()
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("gmailEmail", "GMAIL_EMAIL")
	viper.BindEnv("gmailAppPassword", "GMAIL_APP_PASSWORD")
	viper.BindEnv("mongo.username", "MONGODB_USERNAME")
	viper.BindEnv("mongo.password", "MONGODB_PASSWORD")
	viper.BindEnv("mongo.uri", "MONGODB_URI")

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(filename); statErr == nil {
			return nil, err
		}
		// no config file, environment only
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
