// Package secret seals short client fields (email, phone) at rest with fernet.
package secret

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrCannotOpen is returned when a sealed value does not verify under the configured key.
var ErrCannotOpen = errors.New("sealed value cannot be opened with the configured key")

// Box seals and opens values. A Box without a key passes values through unchanged.
type Box struct {
	key *fernet.Key
}

// New builds a Box from a base64 fernet key. An empty key yields a pass-through Box.
func New(encodedKey string) (*Box, error) {
	if encodedKey == "" {
		return &Box{}, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	return &Box{key: key}, nil
}

// GenerateKey returns a new base64 encoded fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// Enabled reports whether values are actually encrypted.
func (b *Box) Enabled() bool {
	return b != nil && b.key != nil
}

// Seal encrypts plain. Empty values stay empty.
func (b *Box) Seal(plain string) (string, error) {
	if !b.Enabled() || plain == "" {
		return plain, nil
	}
	tok, err := fernet.EncryptAndSign([]byte(plain), b.key)
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}
	return string(tok), nil
}

// Open decrypts a value produced by Seal.
func (b *Box) Open(sealed string) (string, error) {
	if !b.Enabled() || sealed == "" {
		return sealed, nil
	}
	msg := fernet.VerifyAndDecrypt([]byte(sealed), 0, []*fernet.Key{b.key})
	if msg == nil {
		return "", ErrCannotOpen
	}
	return string(msg), nil
}
