// Package cryptox holds the two ciphers the client needs: the payload codec
// spoken by the backend's encrypted endpoints (see PayloadCipher) and AES-GCM
// sealing used for values kept in the local session database.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
)

const gcmNonceSize = 12

// DeriveMasterKey stretches a secret into a 32-byte AES-256 key with Argon2id.
// The same (secret, salt) pair always yields the same key.
func DeriveMasterKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// EncryptEntry serializes the given entry to JSON and encrypts it using AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// 12-byte nonce is generated for each call; ciphertext and nonce are returned
// separately.
//
// Example:
//
//	key := cryptox.DeriveMasterKey([]byte("secret"), salt)
//	ciphertext, nonce, err := cryptox.EncryptEntry(map[string]string{"token": t}, key)
func EncryptEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// DecryptEntry decrypts ciphertext produced by EncryptEntry with the same key
// and nonce and unmarshals the JSON into v.
func DecryptEntry(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// Seal is EncryptEntry with the nonce prepended to the ciphertext, for
// storage in a single column.
func Seal(entry any, key []byte) ([]byte, error) {
	ciphertext, nonce, err := EncryptEntry(entry, key)
	if err != nil {
		return nil, err
	}
	return append(nonce, ciphertext...), nil
}

// Open reverses Seal.
func Open(sealed, key []byte, v any) error {
	if len(sealed) < gcmNonceSize {
		return errors.New("sealed value too short")
	}
	return DecryptEntry(sealed[gcmNonceSize:], sealed[:gcmNonceSize], key, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
