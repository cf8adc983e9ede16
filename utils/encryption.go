package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

var (
	errInvalidEncryptionKeyLength = errors.New("TOKEN_ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	errCiphertextTooShort         = errors.New("encrypted token is too short or malformed")
)

// TokenCipher encrypts platform access tokens at rest with AES-256-GCM.
// A zero-length key disables encryption and passes tokens through unchanged,
// which keeps local development friction-free.
type TokenCipher struct {
	key []byte
}

func NewTokenCipher(key string) (*TokenCipher, error) {
	if key != "" && len(key) != 32 {
		return nil, errInvalidEncryptionKeyLength
	}
	return &TokenCipher{key: []byte(key)}, nil
}

func (c *TokenCipher) Encrypt(token string) (string, error) {
	if len(c.key) == 0 {
		return token, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (c *TokenCipher) Decrypt(encryptedToken string) (string, error) {
	if len(c.key) == 0 {
		return encryptedToken, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(encryptedToken)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize+gcm.Overhead() {
		return "", errCiphertextTooShort
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
