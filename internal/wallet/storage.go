package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/kitcrypto"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

const (
	// seedFileExtension is the extension for stored seed files.
	seedFileExtension = ".seed"

	// seedFilePermissions is the permission mode for seed files.
	seedFilePermissions = 0o600

	// seedDirPermissions is the permission mode for the seeds directory.
	seedDirPermissions = 0o750

	seedFileVersion = 1
)

var (
	// ErrInvalidWalletID indicates the wallet id is not usable as a file name.
	ErrInvalidWalletID = kiterr.WithSuggestion(kiterr.ErrInvalidInput,
		"wallet id must be 1-64 alphanumeric characters, underscores, or hyphens")

	// walletIDRegex validates wallet ids: alphanumeric + underscore + hyphen, 1-64 chars.
	walletIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// ValidateWalletID checks that id can name seed and wallet files.
func ValidateWalletID(id string) error {
	if !walletIDRegex.MatchString(id) {
		return ErrInvalidWalletID
	}
	return nil
}

// SeedMetadata is the unencrypted part of a stored seed.
type SeedMetadata struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Network       Network   `json:"network"`
	RestoreHeight int64     `json:"restore_height"`
	CreatedAt     time.Time `json:"created_at"`
}

// seedSecret is the plaintext that gets encrypted.
type seedSecret struct {
	Words      []string `json:"words,omitempty"`
	Passphrase string   `json:"passphrase,omitempty"`
	Address    string   `json:"address,omitempty"`
	ViewKey    string   `json:"view_key,omitempty"`
}

// seedFile is the on-disk structure.
type seedFile struct {
	Version       int          `json:"version"`
	Metadata      SeedMetadata `json:"metadata"`
	EncryptedSeed []byte       `json:"encrypted_seed"`
}

// SeedStorage persists seeds encrypted at rest.
type SeedStorage interface {
	// Save encrypts and writes a seed. It fails if id already exists.
	Save(meta SeedMetadata, seed Seed, password []byte) error

	// Load reads and decrypts a seed.
	Load(id string, password []byte) (SeedMetadata, Seed, error)

	// LoadMetadata reads the unencrypted metadata only.
	LoadMetadata(id string) (SeedMetadata, error)

	// Exists reports whether a seed is stored under id.
	Exists(id string) (bool, error)

	// List returns all stored ids in lexical order.
	List() ([]string, error)

	// Delete removes a stored seed.
	Delete(id string) error
}

// FileStorage implements SeedStorage as one age-encrypted JSON file per seed.
type FileStorage struct {
	basePath string
}

// NewFileStorage creates a seed store rooted at basePath.
func NewFileStorage(basePath string) *FileStorage {
	return &FileStorage{basePath: basePath}
}

// Save encrypts and writes a seed.
// The password should be zeroed by the caller after this call returns.
func (s *FileStorage) Save(meta SeedMetadata, seed Seed, password []byte) error {
	if err := ValidateWalletID(meta.ID); err != nil {
		return err
	}
	if seed.Kind() == 0 {
		return kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"seed": "uninitialized"})
	}

	exists, err := s.Exists(meta.ID)
	if err != nil {
		return fmt.Errorf("checking seed existence: %w", err)
	}
	if exists {
		return kiterr.WithDetails(kiterr.ErrWalletExists, map[string]string{"id": meta.ID})
	}

	if err := os.MkdirAll(s.basePath, seedDirPermissions); err != nil {
		return fmt.Errorf("creating seed directory: %w", err)
	}

	plaintext, err := json.Marshal(seedSecret{
		Words:      seed.words,
		Passphrase: seed.passphrase,
		Address:    seed.address,
		ViewKey:    seed.viewKey,
	})
	if err != nil {
		return fmt.Errorf("marshaling seed: %w", err)
	}
	defer ZeroBytes(plaintext)

	encrypted, err := kitcrypto.Encrypt(plaintext, string(password))
	if err != nil {
		return fmt.Errorf("encrypting seed: %w", err)
	}

	meta.Kind = seed.Kind().String()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(seedFile{
		Version:       seedFileVersion,
		Metadata:      meta,
		EncryptedSeed: encrypted,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling seed file: %w", err)
	}

	if err := fileutil.WriteAtomic(s.seedPath(meta.ID), data, seedFilePermissions); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}
	return nil
}

// Load reads and decrypts a seed.
// The password should be zeroed by the caller after this call returns.
func (s *FileStorage) Load(id string, password []byte) (SeedMetadata, Seed, error) {
	sf, err := s.read(id)
	if err != nil {
		return SeedMetadata{}, Seed{}, err
	}

	plain, err := kitcrypto.DecryptSecure(sf.EncryptedSeed, string(password))
	if err != nil {
		return SeedMetadata{}, Seed{}, kiterr.ErrDecryptionFailed
	}
	defer plain.Destroy()

	var secret seedSecret
	if err := json.Unmarshal(plain.Bytes(), &secret); err != nil {
		return SeedMetadata{}, Seed{}, fmt.Errorf("parsing seed: %w", err)
	}

	kind, err := ParseSeedKind(sf.Metadata.Kind)
	if err != nil {
		return SeedMetadata{}, Seed{}, err
	}

	var seed Seed
	switch kind {
	case SeedBip39:
		seed, err = NewBip39Seed(secret.Words, secret.Passphrase)
	case SeedLegacy:
		seed, err = NewLegacySeed(secret.Words, secret.Passphrase)
	case SeedWatchOnly:
		seed = NewWatchOnlySeed(secret.Address, secret.ViewKey)
	}
	if err != nil {
		return SeedMetadata{}, Seed{}, err
	}
	return sf.Metadata, seed, nil
}

// LoadMetadata reads seed metadata without decrypting the seed.
func (s *FileStorage) LoadMetadata(id string) (SeedMetadata, error) {
	sf, err := s.read(id)
	if err != nil {
		return SeedMetadata{}, err
	}
	return sf.Metadata, nil
}

// Exists reports whether a seed is stored under id.
func (s *FileStorage) Exists(id string) (bool, error) {
	if err := ValidateWalletID(id); err != nil {
		return false, err
	}
	return fileutil.Exists(s.seedPath(id))
}

// List returns all stored seed ids.
func (s *FileStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading seed directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if id, ok := strings.CutSuffix(name, seedFileExtension); ok && ValidateWalletID(id) == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a stored seed.
func (s *FileStorage) Delete(id string) error {
	if err := ValidateWalletID(id); err != nil {
		return err
	}

	removed, err := fileutil.RemoveIfExists(s.seedPath(id))
	if err != nil {
		return fmt.Errorf("removing seed file: %w", err)
	}
	if !removed {
		return kiterr.WithDetails(kiterr.ErrWalletNotFound, map[string]string{"id": id})
	}
	return nil
}

func (s *FileStorage) read(id string) (*seedFile, error) {
	if err := ValidateWalletID(id); err != nil {
		return nil, err
	}

	// SECURITY: Path is safe because ValidateWalletID restricts id to
	// [a-zA-Z0-9_-]{1,64} and seedPath joins it with a fixed extension.
	data, err := os.ReadFile(s.seedPath(id)) //nolint:gosec // G304: Path validated by ValidateWalletID
	if errors.Is(err, os.ErrNotExist) {
		return nil, kiterr.WithDetails(kiterr.ErrWalletNotFound, map[string]string{"id": id})
	}
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var sf seedFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if sf.Version != seedFileVersion {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{
			"reason": fmt.Sprintf("unsupported seed file version %d", sf.Version),
		})
	}
	return &sf, nil
}

func (s *FileStorage) seedPath(id string) string {
	return filepath.Join(s.basePath, id+seedFileExtension)
}
