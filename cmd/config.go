package cmd

import (
	"github.com/qatrackplus/qatrack-backend/utils"
)

func pgConfigFromEnv() utils.PGConfig {
	return utils.PGConfig{
		ConnectionString: utils.GetEnv("PG_CONNECTION_STRING", ""),
		Hostname:         utils.GetEnv("PG_HOSTNAME", "localhost"),
		Port:             utils.GetEnv("PG_PORT", "5432"),
		User:             utils.GetEnv("PG_USER", "postgres"),
		Password:         utils.GetEnv("PG_PASSWORD", ""),
		Database:         utils.GetEnv("PG_DATABASE", "qatrack"),
	}
}
