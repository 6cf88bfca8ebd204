package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt)
	key2 := DeriveMasterKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveMasterKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveMasterKey(password, []byte("salt-1"))
	key2 := DeriveMasterKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

type sealedToken struct {
	Token string `json:"token"`
}

func TestEncryptDecryptEntry(t *testing.T) {
	key := DeriveMasterKey([]byte("k"), []byte("salt"))

	ct, nonce, err := EncryptEntry(sealedToken{Token: "abc"}, key)
	require.NoError(t, err)
	assert.Len(t, nonce, gcmNonceSize)

	var got sealedToken
	require.NoError(t, DecryptEntry(ct, nonce, key, &got))
	assert.Equal(t, "abc", got.Token)

	other := DeriveMasterKey([]byte("other"), []byte("salt"))
	assert.Error(t, DecryptEntry(ct, nonce, other, &got))
}

func TestEncryptEntry_BadKey(t *testing.T) {
	_, _, err := EncryptEntry(sealedToken{}, []byte("short"))
	assert.Error(t, err)
}

func TestSealOpen(t *testing.T) {
	key := DeriveMasterKey([]byte("k"), []byte("salt"))

	sealed, err := Seal(sealedToken{Token: "jwt"}, key)
	require.NoError(t, err)

	var got sealedToken
	require.NoError(t, Open(sealed, key, &got))
	assert.Equal(t, "jwt", got.Token)

	assert.Error(t, Open([]byte{1, 2, 3}, key, &got))

	sealed[len(sealed)-1] ^= 0xff
	assert.Error(t, Open(sealed, key, &got))
}
