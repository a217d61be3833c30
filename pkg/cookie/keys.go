package cookie

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keyLen = 32

type keyPair struct {
	enc []byte
	mac []byte
}

func deriveKeys(secret string) (keyPair, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("presence/cookie"))
	kp := keyPair{enc: make([]byte, keyLen), mac: make([]byte, keyLen)}
	if _, err := io.ReadFull(r, kp.enc); err != nil {
		return keyPair{}, err
	}
	if _, err := io.ReadFull(r, kp.mac); err != nil {
		return keyPair{}, err
	}
	return kp, nil
}

// GenerateSecret returns a random URL-safe secret. Cookies written with it
// stop verifying once the process exits.
func GenerateSecret() (string, error) {
	b := make([]byte, keyLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
