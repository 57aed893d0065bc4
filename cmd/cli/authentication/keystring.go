package authentication

// Token storage for the mrp CLI, kept in the OS keyring.

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "mrp-cli"
	tokenKey    = "auth_token"

	// TokenEnv overrides the keyring, for CI and headless machines.
	TokenEnv = "MRP_TOKEN"
)

// ErrNotLoggedIn is returned when neither the keyring nor MRP_TOKEN holds a token.
var ErrNotLoggedIn = errors.New("not logged in, run `mrp auth login` first")

type StoredCredentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func StoreCredentials(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

// LoadCredentials prefers MRP_TOKEN, then the keyring.
func LoadCredentials() (*StoredCredentials, error) {
	if token := os.Getenv(TokenEnv); token != "" {
		return &StoredCredentials{Token: token}, nil
	}

	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// DeleteCredentials is a no-op when nothing is stored.
func DeleteCredentials() error {
	if err := keyring.Delete(serviceName, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
