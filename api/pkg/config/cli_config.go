package config

import (
	"github.com/joho/godotenv"
)

// LoadCliConfig is LoadConfig for command line tools, which also pick up a
// .env file from the working directory.
func LoadCliConfig() (Config, error) {
	_ = godotenv.Load()

	return LoadConfig()
}
