package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoadMasterKey derives a 32-byte AES-256 key from, in order of preference:
//  1. the file at path (generated and persisted on first use)
//  2. the environment variable named by envVar (if non-empty)
//  3. freshly generated random material (secrets won't survive a restart)
//
// Key material of any length is accepted; SHA-256 derives the final key.
func LoadMasterKey(path, envVar string) ([]byte, error) {
	var keyMaterial []byte

	switch {
	case path != "":
		data, err := loadOrGenerateKeyFile(path)
		if err != nil {
			return nil, err
		}
		keyMaterial = data
	case envVar != "" && os.Getenv(envVar) != "":
		keyMaterial = []byte(os.Getenv(envVar))
	default:
		keyMaterial = make([]byte, 32)
		if _, err := rand.Read(keyMaterial); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral master key: %w", err)
		}
	}

	hash := sha256.Sum256(keyMaterial)
	return hash[:], nil
}

func loadOrGenerateKeyFile(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create master key directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		material := make([]byte, 32)
		if _, err := rand.Read(material); err != nil {
			return nil, fmt.Errorf("failed to generate master key: %w", err)
		}
		if err := os.WriteFile(path, material, 0600); err != nil {
			return nil, fmt.Errorf("failed to persist master key: %w", err)
		}
		return material, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read master key file: %w", err)
	}
	return data, nil
}

// SealSecret encrypts plaintext with AES-256-GCM under key.
// The output format is: [12-byte nonce][encrypted data][16-byte auth tag].
func SealSecret(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// gcm.Seal appends the ciphertext and auth tag to nonce
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenSecret decrypts data produced by SealSecret.
func OpenSecret(key, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}
