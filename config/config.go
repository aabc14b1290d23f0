package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Configuration struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	ListenAddr string
}

// LoadEnvConfig reads settings from the given .env file. Variables already
// present in the process environment win, so container deployments can
// skip the file entirely.
func LoadEnvConfig(configName string) Configuration {
	if err := godotenv.Load(configName); err != nil {
		log.Printf("no %s file, using process environment", configName)
	}

	return Configuration{
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     getenv("DB_DATABASE", "permsync"),
		DBUser:     getenv("DB_USER", "permsync"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		ListenAddr: getenv("LISTEN_ADDR", ":8050"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN is the pgx connection string for the permission store.
func (c Configuration) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// ManagementDSN targets the postgres maintenance database, used only by
// the development-database reset.
func (c Configuration) ManagementDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}
