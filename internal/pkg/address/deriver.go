package address

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"golang.org/x/crypto/ripemd160"
)

var (
	ErrNotConfigured  = errors.New("address deriver is not configured")
	ErrHardenedIndex  = errors.New("hardened index cannot be derived from xpub")
	ErrInvalidAddress = errors.New("invalid address")
)

// Deriver derives per-contract escrow addresses from an account xpub
// (m/44'/118'/0'/0) so that every contract holds funds on its own address.
type Deriver struct {
	key    *hdkeychain.ExtendedKey
	prefix string
}

func NewDeriver(xpub, prefix string) (*Deriver, error) {
	if xpub == "" || prefix == "" {
		return nil, ErrNotConfigured
	}

	key, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return nil, fmt.Errorf("parse xpub: %w", err)
	}
	if key.IsPrivate() {
		return nil, errors.New("parse xpub: private extended key given")
	}

	return &Deriver{key: key, prefix: prefix}, nil
}

func (d *Deriver) Derive(index uint32) (string, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return "", ErrHardenedIndex
	}

	child, err := d.key.Derive(index)
	if err != nil {
		return "", fmt.Errorf("derive child %d: %w", index, err)
	}

	pubKey, err := child.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("child public key: %w", err)
	}

	return encode(d.prefix, pubKey.SerializeCompressed())
}

// Validate checks that address is a bech32 account or contract address
// with the deriver's prefix.
func (d *Deriver) Validate(address string) error {
	return Validate(d.prefix, address)
}

func Validate(prefix, address string) error {
	hrp, data, err := bech32.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if hrp != prefix {
		return fmt.Errorf("%w: prefix %q, expected %q", ErrInvalidAddress, hrp, prefix)
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(payload) != 20 && len(payload) != 32 {
		return fmt.Errorf("%w: payload length %d", ErrInvalidAddress, len(payload))
	}
	return nil
}

func encode(prefix string, compressedPubKey []byte) (string, error) {
	sum := sha256.Sum256(compressedPubKey)
	rip := ripemd160.New()
	_, _ = rip.Write(sum[:])

	converted, err := bech32.ConvertBits(rip.Sum(nil), 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, converted)
}
