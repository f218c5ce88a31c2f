package keymaterial

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// KeyMaterial holds the Ed25519 keypair used for session tokens. It is
// loaded once at process start and shared read-only afterwards. A
// verify-only instance carries just the public key.
type KeyMaterial struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
	KeyID   string
}

var ErrNoSigningKey = errors.New("key material has no private key")

// Load reads PEM-encoded Ed25519 keys from the given paths. privPath
// may be empty to build verify-only material. A missing or unparsable
// file is an error; callers treat it as fatal at startup.
func Load(privPath, pubPath, kid string) (*KeyMaterial, error) {
	raw, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pub, err := jwt.ParseEdPublicKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pubKey, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("public key is not ed25519")
	}

	km := &KeyMaterial{public: pubKey, KeyID: kid}

	if privPath != "" {
		raw, err := os.ReadFile(privPath)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}
		priv, err := jwt.ParseEdPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		privKey, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not ed25519")
		}
		km.private = privKey
	}
	return km, nil
}

// FromPublicKey builds verify-only material from an already-parsed
// public key, e.g. one fetched from a sibling service's JWKS.
func FromPublicKey(pub ed25519.PublicKey, kid string) *KeyMaterial {
	return &KeyMaterial{public: pub, KeyID: kid}
}

// Generate creates an ephemeral keypair (good for local dev and tests).
func Generate(kid string) (*KeyMaterial, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyMaterial{private: priv, public: pub, KeyID: kid}, nil
}

// CanSign reports whether this material carries the private key.
func (k *KeyMaterial) CanSign() bool { return k.private != nil }

// Signer returns the private key for token issuance.
func (k *KeyMaterial) Signer() (ed25519.PrivateKey, error) {
	if k.private == nil {
		return nil, ErrNoSigningKey
	}
	return k.private, nil
}

// Verifier returns the public key.
func (k *KeyMaterial) Verifier() ed25519.PublicKey { return k.public }

// PublicJWK renders the public part as a JWK for the JWKS endpoint.
func (k *KeyMaterial) PublicJWK() map[string]any {
	return map[string]any{
		"kty": "OKP",
		"crv": "Ed25519",
		"alg": "EdDSA",
		"use": "sig",
		"kid": k.KeyID,
		"x":   base64.RawURLEncoding.EncodeToString(k.public),
	}
}
