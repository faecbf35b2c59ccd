package verify

import (
	"fmt"

	"github.com/jedisct1/go-minisign"
)

// VerifyMinisign checks a minisign signature over content. pubKey is the
// base64 public key string as published by the vendor (the second line of a
// minisign .pub file); sigPath is the downloaded .minisig file.
func VerifyMinisign(content []byte, sigPath, pubKey string) error {
	key, err := minisign.NewPublicKey(pubKey)
	if err != nil {
		return fmt.Errorf("parse minisign pubkey: %w", err)
	}

	sig, err := minisign.NewSignatureFromFile(sigPath)
	if err != nil {
		return fmt.Errorf("read minisign signature: %w", err)
	}

	valid, err := key.Verify(content, sig)
	if err != nil {
		return fmt.Errorf("minisign: verification error: %w", err)
	}
	if !valid {
		return fmt.Errorf("minisign: signature verification failed")
	}

	return nil
}
