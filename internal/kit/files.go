package kit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// WalletFiles are the engine files of one wallet.
type WalletFiles struct {
	Cache   string `json:"cache"`
	Keys    string `json:"keys"`
	Address string `json:"address"`
}

// FilesOf returns the engine file paths of wallet id in dir.
func FilesOf(dir, id string) WalletFiles {
	base := filepath.Join(dir, id)
	return WalletFiles{
		Cache:   base,
		Keys:    base + ".keys",
		Address: base + ".address.txt",
	}
}

// Paths returns cache, keys and address paths in that order.
func (f WalletFiles) Paths() []string {
	return []string{f.Cache, f.Keys, f.Address}
}

// Existing returns the paths that exist on disk.
func (f WalletFiles) Existing() ([]string, error) {
	var out []string
	for _, p := range f.Paths() {
		ok, err := fileutil.Exists(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeleteWallet removes the engine files of wallet id in dir. It reports
// true only when the keys file existed and every existing file was removed.
// The error joins every removal failure.
func DeleteWallet(dir, id string) (bool, error) {
	if err := wallet.ValidateWalletID(id); err != nil {
		return false, err
	}
	files := FilesOf(dir, id)

	var errs []error
	success := true

	if _, err := fileutil.RemoveIfExists(files.Cache); err != nil {
		success = false
		errs = append(errs, err)
	}

	removed, err := fileutil.RemoveIfExists(files.Keys)
	if err != nil {
		errs = append(errs, err)
	}
	success = removed && err == nil && success

	if _, err := fileutil.RemoveIfExists(files.Address); err != nil {
		success = false
		errs = append(errs, err)
	}

	return success, errors.Join(errs...)
}

// createWalletIfNotExists creates the engine wallet from the seed unless any
// of its files exist already.
func (k *Kit) createWalletIfNotExists() error {
	if err := os.MkdirAll(k.walletDir, 0o750); err != nil {
		return fmt.Errorf("creating wallet directory: %w", err)
	}

	existing, err := FilesOf(k.walletDir, k.walletID).Existing()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		k.logger.Debug().Strs("files", existing).Msg("wallet files exist, not creating")
		return nil
	}

	path := k.WalletPath()
	switch k.seed.Kind() {
	case wallet.SeedBip39, wallet.SeedLegacy:
		legacy, err := k.seed.ToLegacy()
		if err != nil {
			return err
		}
		w, err := k.engine.RecoverWallet(path, walletPassword, legacy.Mnemonic(), legacy.Passphrase(), k.restoreHeight)
		if err != nil {
			return fmt.Errorf("wallet recovery error: %w", err)
		}
		if err := k.checkAndClose(w); err != nil {
			return err
		}
		// The first open rebuilds the cache from the restore height.
		if _, err := fileutil.RemoveIfExists(path); err != nil {
			return err
		}

	case wallet.SeedWatchOnly:
		w, err := k.engine.CreateWatchOnlyWallet(path, walletPassword, "", k.restoreHeight,
			k.seed.Address(), k.seed.ViewKey(), "")
		if err != nil {
			return fmt.Errorf("wallet recovery error: %w", err)
		}
		if err := k.checkAndClose(w); err != nil {
			return err
		}

	default:
		return kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"reason": "unknown seed kind"})
	}

	k.logger.Info().Str("path", path).Str("kind", k.seed.Kind().String()).Msg("wallet created")
	return nil
}

func (k *Kit) checkAndClose(w engine.Wallet) error {
	status := w.Status()
	if !status.IsOK() {
		if err := k.engine.CloseWallet(w); err != nil {
			k.logger.Warn().Err(err).Msg("closing wallet")
		}
		return kiterr.New(kiterr.ErrEngine.Code, "wallet recovery error: "+status.Message)
	}
	return k.engine.CloseWallet(w)
}
