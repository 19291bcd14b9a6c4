package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// GenerateSecret returns a random base64 value suitable for JWT_SECRET.
func GenerateSecret() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", fmt.Errorf("could not generate secret key")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}
