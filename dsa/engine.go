package dsa

import (
	"context"
	"errors"
)

var (
	// ErrNoPublicKey is returned when signing without a public key.
	ErrNoPublicKey = errors.New("dsa: no public key")

	// ErrNoPrivateKey is returned when signing without a private key.
	ErrNoPrivateKey = errors.New("dsa: no private key")
)

// A KeyGenerator creates new DSA key pairs.
type KeyGenerator interface {
	GenerateKeyPair(ctx context.Context, bits int) (*PublicKey, *PrivateKey, error)
}

// A SignatureCreator signs message digests with an imported key pair.
type SignatureCreator interface {
	ImportPublicKey(pub *PublicKey)
	ImportPrivateKey(priv *PrivateKey)
	CreateSignature(digest []byte) (*Signature, error)
}

// A SignatureValidator verifies signatures with an imported public key.
type SignatureValidator interface {
	ImportPublicKey(pub *PublicKey)
	VerifySignature(digest []byte, sig *Signature) bool
}

// Engine holds a key pair and implements the three DSA roles. Keys are set
// once (by import or generation) and then only read; an Engine must not be
// mutated concurrently with signing or verification.
type Engine struct {
	opts *options
	pub  *PublicKey
	priv *PrivateKey
}

var (
	_ KeyGenerator       = (*Engine)(nil)
	_ SignatureCreator   = (*Engine)(nil)
	_ SignatureValidator = (*Engine)(nil)
)

// NewEngine creates an engine with no keys.
func NewEngine(opts ...Option) *Engine {
	return &Engine{opts: new_options(opts)}
}

// ImportPublicKey sets the public key used for signing and verification.
func (e *Engine) ImportPublicKey(pub *PublicKey) {
	e.pub = pub
}

// ImportPrivateKey sets the private key used for signing.
func (e *Engine) ImportPrivateKey(priv *PrivateKey) {
	e.priv = priv
}

// PublicKey returns the current public key (nil if none).
func (e *Engine) PublicKey() *PublicKey {
	return e.pub
}

// PrivateKey returns the current private key (nil if none).
func (e *Engine) PrivateKey() *PrivateKey {
	return e.priv
}
