package keypair

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// MinBits is the smallest RSA modulus RSAGenerator will produce.
const MinBits = 2048

// Generator creates a fresh asymmetric keypair in textual form.
type Generator interface {
	Generate() (Pair, error)
}

// RSAGenerator produces PEM encoded RSA keys: PKCS#1 for the private key and PKIX for the public key.
// The key only ever exists in memory and in the files the Manager writes.
type RSAGenerator struct {
	Bits int
}

// Generate implements Generator.
func (g RSAGenerator) Generate() (Pair, error) {
	bits := max(g.Bits, MinBits)

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return Pair{}, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return Pair{}, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return Pair{
		Public: string(pem.EncodeToMemory(&pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: pubASN1,
		})),
		Private: string(pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
		})),
	}, nil
}
