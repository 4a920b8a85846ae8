package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

func New() *Config {
	once.Do(func() {
		err := godotenv.Load("./configs/.env")
		if err != nil && !os.IsNotExist(err) {
			log.Println("loading envs error: ", err)
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

// GetStringOr falls back to def when the key is unset or empty.
// Every stepdiary key has a local-run default, so a missing .env is fine.
func (c *Config) GetStringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) GetBool(key string) bool {
	return os.Getenv(key) == "true"
}
