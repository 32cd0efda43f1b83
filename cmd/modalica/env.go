package main

import (
	"errors"
	"os"
	"path/filepath"

	// Packages
	godotenv "github.com/joho/godotenv"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	envFile = ".env"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// loadEnv sets environment variables from .env in the working directory
// and then from the user config directory. Variables already set are kept.
func loadEnv(name string) error {
	paths := []string{envFile}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, name, envFile))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}
