package utils

import "testing"

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

func TestTokenCipherRoundTrip(t *testing.T) {
	c, err := NewTokenCipher(testEncryptionKey)
	if err != nil {
		t.Fatalf("NewTokenCipher: %v", err)
	}

	token := "oauth-access-token-value"
	encrypted, err := c.Encrypt(token)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if encrypted == token {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := c.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decrypted != token {
		t.Fatalf("round trip = %q, want %q", decrypted, token)
	}
}

func TestTokenCipherEmptyKeyPassthrough(t *testing.T) {
	c, err := NewTokenCipher("")
	if err != nil {
		t.Fatalf("NewTokenCipher: %v", err)
	}

	encrypted, err := c.Encrypt("plain")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if encrypted != "plain" {
		t.Fatalf("passthrough Encrypt = %q, want unchanged", encrypted)
	}

	decrypted, err := c.Decrypt("plain")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decrypted != "plain" {
		t.Fatalf("passthrough Decrypt = %q, want unchanged", decrypted)
	}
}

func TestTokenCipherRejectsBadKeyLength(t *testing.T) {
	if _, err := NewTokenCipher("too-short"); err == nil {
		t.Fatal("expected an error for a non-32-byte key")
	}
}

func TestTokenCipherRejectsTamperedCiphertext(t *testing.T) {
	c, err := NewTokenCipher(testEncryptionKey)
	if err != nil {
		t.Fatalf("NewTokenCipher: %v", err)
	}

	if _, err := c.Decrypt("bm90IGEgcmVhbCBjaXBoZXJ0ZXh0"); err == nil {
		t.Fatal("Decrypt of garbage succeeded")
	}
	if _, err := c.Decrypt("%%%not-base64%%%"); err == nil {
		t.Fatal("Decrypt of non-base64 input succeeded")
	}
}
