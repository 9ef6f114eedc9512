package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ErrSecretNotFound is returned when a key is in neither the secrets file nor the environment.
var ErrSecretNotFound = errors.New("secret not found")

// LookupSecret resolves key from the dotenv-format secrets file, falling back to the environment.
func LookupSecret(key string) (string, error) {
	return lookupSecret(DefaultEnvConfig.SECRETS_FILE_PATH, key)
}

func lookupSecret(path, key string) (string, error) {
	if path != "" {
		secrets, err := godotenv.Read(path)
		switch {
		case err == nil:
			if v := secrets[key]; v != "" {
				return v, nil
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return "", fmt.Errorf("failed to read secrets file %s: %w", path, err)
		}
	}

	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: key %q", ErrSecretNotFound, key)
}
