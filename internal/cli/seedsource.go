package cli

import (
	"fmt"

	"github.com/mrz1836/xmrkit/internal/wallet"
)

// seedStorage returns the encrypted seed store under the configured home.
func seedStorage() *wallet.FileStorage {
	return wallet.NewFileStorage(cfg.GetSeedDir())
}

// loadStoredSeed prompts for the store password and decrypts seed id.
func loadStoredSeed(id string) (wallet.SeedMetadata, wallet.Seed, error) {
	password, err := promptSecretFn(fmt.Sprintf("Enter password for seed '%s': ", id))
	if err != nil {
		return wallet.SeedMetadata{}, wallet.Seed{}, err
	}
	defer wallet.ZeroBytes(password)

	meta, seed, err := seedStorage().Load(id, password)
	if err != nil {
		return wallet.SeedMetadata{}, wallet.Seed{}, err
	}
	logger.Debug().Str("seed_id", id).Str("kind", meta.Kind).Msg("seed loaded")
	return meta, seed, nil
}

// readSeed returns the stored seed id when set, otherwise it prompts for a
// mnemonic. Twenty-five words are read as a legacy seed, anything else as
// BIP39. With askPassphrase the BIP39 passphrase or seed offset is prompted.
//
// BIP39 input that fails checksum validation is still accepted with a
// warning because conversion never depended on the checksum.
func readSeed(id string, askPassphrase bool) (wallet.Seed, error) {
	if id != "" {
		_, seed, err := loadStoredSeed(id)
		return seed, err
	}

	words, err := promptMnemonic("Enter mnemonic: ")
	if err != nil {
		return wallet.Seed{}, err
	}

	if len(words) == wallet.LegacyMnemonicLength {
		offset := ""
		if askPassphrase {
			if offset, err = promptOptionalSecret("seed offset"); err != nil {
				return wallet.Seed{}, err
			}
		}
		if _, err := wallet.DecodeLegacyMnemonic(words); err != nil {
			return wallet.Seed{}, err
		}
		return wallet.NewLegacySeed(words, offset)
	}

	passphrase := ""
	if askPassphrase {
		if passphrase, err = promptOptionalSecret("BIP39 passphrase"); err != nil {
			return wallet.Seed{}, err
		}
	}
	seed, err := wallet.NewBip39Seed(words, passphrase)
	if err != nil {
		return wallet.Seed{}, err
	}
	if vErr := wallet.ValidateBip39Mnemonic(seed.Mnemonic()); vErr != nil {
		warnBip39(vErr, words)
	}
	return seed, nil
}

func warnBip39(err error, words []string) {
	logger.Warn().Err(err).Msg("bip39 validation failed")
	out(rootCmd.ErrOrStderr(), "Warning: the mnemonic is not valid BIP39 (%v).\n", err)
	if hint := wallet.FormatTypoSuggestions(wallet.DetectTypos(words, wallet.DictionaryBIP39)); hint != "" {
		outln(rootCmd.ErrOrStderr(), hint)
	}
}
