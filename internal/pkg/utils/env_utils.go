package utils

import "os"

// GetEnv reads an environment variable with a fallback default.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
