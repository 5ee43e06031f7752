package blob

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mobilev/server/domain"
	"github.com/mobilev/server/domain/repositories"
)

// EncryptedFileStore writes artifacts to disk encrypted with AES-256-GCM.
// Both artifact kinds (audio and word clouds) go through the same path, so
// nothing user-generated is ever stored in the clear.
type EncryptedFileStore struct {
	aead cipher.AEAD
}

var _ repositories.BlobStore = (*EncryptedFileStore)(nil)

// NewEncryptedFileStore creates a store from a hex-encoded 32-byte key.
func NewEncryptedFileStore(hexKey string) (*EncryptedFileStore, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key encoding: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &EncryptedFileStore{aead: aead}, nil
}

// Put encrypts raw and writes it to path, creating parent directories.
func (s *EncryptedFileStore) Put(path string, raw []byte) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("%w: nonce generation: %v", domain.ErrBlobStore, err)
	}

	// File layout: nonce || ciphertext.
	sealed := s.aead.Seal(nonce, nonce, raw, nil)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBlobStore, err)
	}
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBlobStore, err)
	}
	return nil
}

// Get reads path and decrypts its contents. A missing or corrupted file
// wraps ErrBlobStore, which the poll handler reports as a failed response
// without touching the stored record.
func (s *EncryptedFileStore) Get(path string) ([]byte, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobStore, err)
	}

	if len(sealed) < s.aead.NonceSize() {
		return nil, fmt.Errorf("%w: truncated blob %s", domain.ErrBlobStore, path)
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]

	raw, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decryption of %s: %v", domain.ErrBlobStore, path, err)
	}
	return raw, nil
}
