package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

// ErrEmptySecret is returned by NewPayloadCipher when no shared secret is
// configured.
var ErrEmptySecret = errors.New("payload secret is empty")

const (
	saltedPrefix = "Salted__"
	saltSize     = 8
	keySize      = 32
)

// PayloadCipher is the codec for the backend's encrypted endpoints.
//
// Wire format (OpenSSL "enc" / CryptoJS passphrase mode):
//
//	base64( "Salted__" || salt[8] || AES-256-CBC(PKCS#7(json)) )
//
// with key and IV derived from the shared passphrase and salt by
// EVP_BytesToKey (MD5, one round). The passphrase ships with every client, so
// this only obfuscates payloads on the wire; it must match the backend
// byte-for-byte and must not be "hardened" on one side alone.
type PayloadCipher struct {
	passphrase []byte
}

// NewPayloadCipher returns a cipher bound to the shared secret.
func NewPayloadCipher(secret string) (*PayloadCipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &PayloadCipher{passphrase: []byte(secret)}, nil
}

// Encrypt serializes v to JSON and returns the encoded ciphertext.
func (c *PayloadCipher) Encrypt(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return c.SealBytes(plaintext)
}

// Decrypt decodes and decrypts s and unmarshals the JSON into v. Any defect
// in the input (encoding, header, length, padding, JSON) yields an error
// wrapping common.ErrDecrypt.
func (c *PayloadCipher) Decrypt(s string, v any) error {
	plaintext, err := c.OpenBytes(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: decode payload: %v", common.ErrDecrypt, err)
	}
	return nil
}

// SealBytes encrypts raw plaintext with a fresh random salt.
func (c *PayloadCipher) SealBytes(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return c.sealWithSalt(plaintext, salt)
}

// OpenBytes decrypts s back to the raw plaintext.
func (c *PayloadCipher) OpenBytes(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}
	if len(raw) < len(saltedPrefix)+saltSize || !bytes.HasPrefix(raw, []byte(saltedPrefix)) {
		return nil, fmt.Errorf("%w: missing salt header", common.ErrDecrypt)
	}

	salt := raw[len(saltedPrefix) : len(saltedPrefix)+saltSize]
	ciphertext := raw[len(saltedPrefix)+saltSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", common.ErrDecrypt)
	}

	key, iv := evpBytesToKey(c.passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}
	return plaintext, nil
}

// Wrap encrypts v into the {"data": ...} envelope.
func (c *PayloadCipher) Wrap(v any) (models.Envelope, error) {
	data, err := c.Encrypt(v)
	if err != nil {
		return models.Envelope{}, err
	}
	return models.Envelope{Data: data}, nil
}

// Unwrap decrypts an envelope into v.
func (c *PayloadCipher) Unwrap(env models.Envelope, v any) error {
	return c.Decrypt(env.Data, v)
}

func (c *PayloadCipher) sealWithSalt(plaintext, salt []byte) (string, error) {
	key, iv := evpBytesToKey(c.passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, len(saltedPrefix)+saltSize+len(ciphertext))
	out = append(out, saltedPrefix...)
	out = append(out, salt...)
	out = append(out, ciphertext...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and a single iteration,
// producing a 32-byte key followed by a 16-byte IV.
func evpBytesToKey(passphrase, salt []byte) (key, iv []byte) {
	var (
		derived []byte
		prev    []byte
	)
	for len(derived) < keySize+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keySize], derived[keySize : keySize+aes.BlockSize]
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("empty plaintext")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, errors.New("invalid padding")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return b[:len(b)-n], nil
}
