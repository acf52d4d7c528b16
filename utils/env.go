package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type parseableEnv interface {
	string | int | bool | float64
}

func parseEnv[V parseableEnv](name, value string) (V, error) {
	var out V
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = value
	case *int:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not an integer", name, value)
		}
		*ptr = parsed
	case *bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a boolean", name, value)
		}
		*ptr = parsed
	case *float64:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a float", name, value)
		}
		*ptr = parsed
	}
	return out, nil
}

// GetEnv reads an environment variable, falling back to defaultValue when it
// is unset or empty.
func GetEnv[V parseableEnv](name string, defaultValue V) V {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := parseEnv[V](name, value)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

// GetRequiredEnv reads an environment variable and exits if it is missing.
func GetRequiredEnv[V parseableEnv](name string) V {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	parsed, err := parseEnv[V](name, value)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}
