// Package securedata builds and verifies the secured payload records
// carried by the SecuredDataTransmission service. Records are sealed with an
// AES-CMAC over the inner message, appended after the plaintext.
package securedata

import (
	"crypto/aes"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/chmike/cmac-go"
)

// MACSize is the length of the appended AES-CMAC tag.
const MACSize = 16

var ErrVerificationFailed = errors.New("secured record MAC verification failed")

// Sealer signs and opens secured data records with one symmetric key.
type Sealer struct {
	key []byte
}

// NewSealer builds a sealer from an AES key (16, 24 or 32 bytes).
func NewSealer(key []byte) (*Sealer, error) {
	// fail early on bad keys instead of on first use
	if _, err := cmac.New(aes.NewCipher, key); err != nil {
		return nil, fmt.Errorf("secured data key: %w", err)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Sealer{key: k}, nil
}

// Seal appends the AES-CMAC tag of the inner message to it, producing the
// security data record for a SecuredDataTransmission request.
func (s *Sealer) Seal(message []byte) ([]byte, error) {
	mac, err := s.mac(message)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(message)+MACSize)
	out = append(out, message...)
	return append(out, mac...), nil
}

// Open verifies a sealed record and returns the inner message.
func (s *Sealer) Open(record []byte) ([]byte, error) {
	if len(record) < MACSize {
		return nil, fmt.Errorf("secured record of %d bytes is shorter than the MAC", len(record))
	}
	message := record[:len(record)-MACSize]
	mac, err := s.mac(message)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(mac, record[len(record)-MACSize:]) != 1 {
		return nil, ErrVerificationFailed
	}
	out := make([]byte, len(message))
	copy(out, message)
	return out, nil
}

func (s *Sealer) mac(message []byte) ([]byte, error) {
	cm, err := cmac.New(aes.NewCipher, s.key)
	if err != nil {
		return nil, err
	}
	if _, err := cm.Write(message); err != nil {
		return nil, err
	}
	return cm.Sum(nil), nil
}
