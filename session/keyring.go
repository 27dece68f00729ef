package session

import (
	"github.com/anitrack-cli/anitrack/constant"
	"github.com/zalando/go-keyring"
)

const keyringUser = "backend-token"

// Keyring stores the token in the system keyring.
type Keyring struct{}

// Get retrieves the token from the system keyring.
func (Keyring) Get() (string, error) {
	return keyring.Get(constant.App, keyringUser)
}

// Set persists the token to the system keyring.
func (Keyring) Set(token string) error {
	return keyring.Set(constant.App, keyringUser, token)
}

// Delete removes the token from the system keyring.
func (Keyring) Delete() error {
	return keyring.Delete(constant.App, keyringUser)
}
