// Package verify checks detached GPG signatures on repository metadata
// before the generator trusts it.
package verify

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier holds the trusted public keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier loads a public keyring from a key file
func NewVerifier(keyPath string) (*Verifier, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored key first
	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary key
		keyFile.Seek(0, 0)
		keyring, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}

	return &Verifier{keyring: keyring}, nil
}

// VerifyDetached checks an armored detached signature over data
func (v *Verifier) VerifyDetached(data, signature []byte) error {
	_, err := openpgp.CheckArmoredDetachedSignature(
		v.keyring,
		bytes.NewReader(data),
		bytes.NewReader(signature),
		nil,
	)
	if err != nil {
		// Signatures may also be binary
		_, binErr := openpgp.CheckDetachedSignature(
			v.keyring,
			bytes.NewReader(data),
			bytes.NewReader(signature),
			nil,
		)
		if binErr != nil {
			return fmt.Errorf("signature verification failed: %w", err)
		}
	}
	return nil
}

// VerifyFile checks the detached signature at sigPath over the file at
// dataPath
func (v *Verifier) VerifyFile(dataPath, sigPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataPath, err)
	}

	signature, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature %s: %w", sigPath, err)
	}

	return v.VerifyDetached(data, signature)
}
