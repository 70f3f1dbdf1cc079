package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// SignatureLength is the size of a raw r||s secp256k1 signature.
const SignatureLength = 64

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
)

type Verifier struct{}

func New() *Verifier {
	return &Verifier{}
}

// Verify checks an r||s signature over sha256(message).
// Hex or encoding problems with the key are reported as ErrInvalidPublicKey,
// everything else about the signature as ErrInvalidSignature.
func (v *Verifier) Verify(message []byte, signatureHex, publicKeyHex string) error {
	pubKey, err := parsePublicKey(publicKeyHex)
	if err != nil {
		return err
	}

	sig, err := parseSignature(signatureHex)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(message)
	if !sig.Verify(digest[:], pubKey) {
		return ErrInvalidSignature
	}
	return nil
}

func (v *Verifier) ValidatePublicKey(publicKeyHex string) error {
	_, err := parsePublicKey(publicKeyHex)
	return err
}

func parsePublicKey(publicKeyHex string) (*btcec.PublicKey, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: decode hex: %v", ErrInvalidPublicKey, err)
	}

	pubKey, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pubKey, nil
}

func parseSignature(signatureHex string) (*ecdsa.Signature, error) {
	raw, err := hex.DecodeString(signatureHex)
	if err != nil {
		return nil, fmt.Errorf("%w: decode hex: %v", ErrInvalidSignature, err)
	}
	if len(raw) != SignatureLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, SignatureLength, len(raw))
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(raw[:32]); overflow || r.IsZero() {
		return nil, fmt.Errorf("%w: r out of range", ErrInvalidSignature)
	}
	if overflow := s.SetByteSlice(raw[32:]); overflow || s.IsZero() {
		return nil, fmt.Errorf("%w: s out of range", ErrInvalidSignature)
	}

	return ecdsa.NewSignature(&r, &s), nil
}
