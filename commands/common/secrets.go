package common

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jfrog/jfrog-cli-core/v2/utils/ioutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"golang.org/x/crypto/scrypt"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const (
	minPasswordLength   = 12
	encryptionKeyLength = 32
)

func ReadSecretPassword(prompt ...string) (string, error) {
	passwordFromEnv, passwordInEnv := os.LookupEnv(model.EnvKeySecretsPassword)
	if passwordInEnv {
		return passwordFromEnv, nil
	}

	message := "Password: "
	if len(prompt) > 0 {
		message = prompt[0]
	}

	password, err := ioutils.ScanPasswordFromConsole(message)
	if err != nil {
		return "", err
	}

	if err = validateSecretPassword(password); err != nil {
		return "", err
	}

	return password, nil
}

func EncryptSecret(password string, secretValue string) (string, error) {
	encryptionKey, salt, err := deriveKey([]byte(password), nil)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(encryptionKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	cipherBytes := gcm.Seal(nonce, nonce, []byte(secretValue), nil)

	cipherBytes = append(cipherBytes, salt...)

	return base64.StdEncoding.EncodeToString(cipherBytes), nil
}

func DecryptSecret(password string, encryptedValue string) (string, error) {
	encryptedBytes, err := base64.StdEncoding.DecodeString(encryptedValue)
	if err != nil {
		return "", err
	}

	if len(encryptedBytes) < encryptionKeyLength {
		return "", errors.New("invalid encrypted secret length")
	}

	salt, data := encryptedBytes[len(encryptedBytes)-encryptionKeyLength:], encryptedBytes[:len(encryptedBytes)-encryptionKeyLength]

	encryptionKey, _, err := deriveKey([]byte(password), salt)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(encryptionKey)
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", errors.New("invalid encrypted secret length")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]

	clearTextBytes, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(clearTextBytes), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blockCipher)
}

// deriveKey Create a 32-bit key from any password. Needed to use AES
func deriveKey(password, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, encryptionKeyLength)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}

	key, err := scrypt.Key(password, salt, 16384, 8, 1, encryptionKeyLength)
	if err != nil {
		return nil, nil, err
	}

	return key, salt, nil
}

func validateSecretPassword(key string) error {
	if len(key) < minPasswordLength {
		return fmt.Errorf("a secret should have a minimum length of %d, got %d", minPasswordLength, len(key))
	}
	return nil
}

// CredentialStore keeps encrypted tokens in a json file, so that no token has to be written in pipeline definitions.
type CredentialStore struct {
	file string
}

func NewCredentialStore(file string) *CredentialStore {
	return &CredentialStore{file: file}
}

func (s *CredentialStore) Load() (model.Credentials, error) {
	content, err := os.ReadFile(s.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Credentials{}, nil
		}
		return nil, err
	}

	credentials := model.Credentials{}
	if err = json.Unmarshal(content, &credentials); err != nil {
		return nil, fmt.Errorf("invalid credentials file %s: %w", s.file, err)
	}
	return credentials, nil
}

func (s *CredentialStore) Save(credentials model.Credentials) error {
	content, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.file); dir != "" {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.file, content, 0o600)
}

// Lookup returns the clear value of a credential. The password is only asked when the credential exists.
func (s *CredentialStore) Lookup(name string) (string, error) {
	credentials, err := s.Load()
	if err != nil {
		return "", err
	}

	encrypted, exists := credentials[name]
	if !exists {
		return "", fmt.Errorf("credential '%s' is not defined in %s: %w", name, s.file, model.ErrNotFound)
	}

	password, err := ReadSecretPassword("Credentials Password: ")
	if err != nil {
		return "", err
	}

	value, err := DecryptSecret(password, encrypted)
	if err != nil {
		log.Debug(fmt.Sprintf("cannot decrypt credential '%s': %+v", name, err))
		return "", fmt.Errorf("cannot decrypt credential '%s', please check the password", name)
	}

	return value, nil
}
