// Package secret seals device-store values with a locally generated key.
package secret

import (
	"crypto/rand"
	"os"
	"path/filepath"

	"baito/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// boxSealer implements service.Sealer with nacl secretbox. The key lives in a
// 0600 file next to the store and is generated on first use.
type boxSealer struct {
	key [keySize]byte
}

// NewBoxSealer loads the sealing key from keyPath, creating it if absent.
func NewBoxSealer(keyPath string) (service.Sealer, error) {
	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}

	sealer := &boxSealer{}
	copy(sealer.key[:], key)

	return sealer, nil
}

// Seal encrypts the plaintext with a fresh random nonce prepended to the output.
func (s *boxSealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &s.key), nil
}

// Open decrypts a value produced by Seal.
func (s *boxSealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, errors.New("sealed value too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errors.New("failed to open sealed value")
	}

	return plaintext, nil
}

func loadOrCreateKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != keySize {
			return nil, errors.Errorf("key file %s has wrong size", keyPath)
		}

		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read key file")
	}

	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "failed to generate key")
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create key directory")
	}
	if err := os.WriteFile(keyPath, key, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write key file")
	}

	return key, nil
}
