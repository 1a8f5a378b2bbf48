package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"

	"github.com/GregMSThompson/luongnho/internal/errs"
)

type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// ForKey picks KMS when a client is available and Plaintext otherwise.
func ForKey(client *gcpkms.KeyManagementClient, keyName string) Cipher {
	if client == nil || keyName == "" {
		return Plaintext{}
	}
	return NewKMS(client, keyName)
}

type kms struct {
	client  *gcpkms.KeyManagementClient
	keyName string
}

func NewKMS(client *gcpkms.KeyManagementClient, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Encrypt encrypts plaintext with the configured KMS key and returns base64 text.
func (k *kms) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms encrypt failed", err)
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Decrypt decrypts base64 ciphertext produced by Encrypt.
func (k *kms) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errs.NewEncryptionError("ciphertext is not base64", err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms decrypt failed", err)
	}
	return string(resp.Plaintext), nil
}

// Plaintext is used when no KMS key is configured.
type Plaintext struct{}

func (Plaintext) Encrypt(_ context.Context, s string) (string, error) { return s, nil }
func (Plaintext) Decrypt(_ context.Context, s string) (string, error) { return s, nil }
