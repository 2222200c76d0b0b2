package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	seedKind          string
	seedGenerate      int
	seedRestoreHeight string
	seedPassphrase    bool
	seedYes           bool
)

// seedCmd is the parent command for the encrypted seed store.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage encrypted seeds",
	Long: `Store BIP39 mnemonics, legacy 25-word seeds and watch-only keys encrypted
with a password under <home>/seeds.`,
}

// seedAddCmd stores a new seed.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var seedAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a seed to the store",
	Long: `Add a seed to the encrypted store. The seed material is prompted with hidden
input. With --generate a fresh BIP39 mnemonic is created and shown once.

Example:
  xmrkit seed add main --kind bip39 --restore-height 2021-06-01
  xmrkit seed add fresh --generate 24
  xmrkit seed add old --kind legacy --passphrase
  xmrkit seed add shop --kind watch-only`,
	Args: cobra.ExactArgs(1),
	RunE: runSeedAdd,
}

// seedListCmd lists stored seeds.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var seedListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored seeds",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runSeedList,
}

// seedRemoveCmd deletes a stored seed.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var seedRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Remove a stored seed",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runSeedRemove,
}

func runSeedAdd(_ *cobra.Command, args []string) error {
	id := args[0]
	if err := wallet.ValidateWalletID(id); err != nil {
		return err
	}
	storage := seedStorage()
	exists, err := storage.Exists(id)
	if err != nil {
		return err
	}
	if exists {
		return kiterr.WithDetails(kiterr.ErrWalletExists, map[string]string{"id": id})
	}

	network := cfg.GetNetwork()
	seed, generated, err := readNewSeed()
	if err != nil {
		return err
	}

	height := cfg.Wallet.RestoreHeight
	switch {
	case seedRestoreHeight != "":
		if height, err = wallet.ParseRestoreHeight(seedRestoreHeight, network, nowFn()); err != nil {
			return err
		}
	case generated:
		height = wallet.RestoreHeightForNewWallet(nowFn())
	}

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer wallet.ZeroBytes(password)

	meta := wallet.SeedMetadata{ID: id, Network: network, RestoreHeight: height}
	if err := storage.Save(meta, seed, password); err != nil {
		return err
	}
	logger.Info().Str("seed_id", id).Str("kind", seed.Kind().String()).Msg("seed stored")

	res := seedAddResult{ID: id, Kind: seed.Kind().String(), Network: network, RestoreHeight: height}
	if generated {
		res.Mnemonic = seed.Mnemonic()
	}
	if formatter.IsJSON() {
		return formatter.Print(res)
	}

	w := formatter.Writer()
	if generated {
		outln(w, "Write down this mnemonic. It will not be shown again:")
		outln(w)
		outln(w, res.Mnemonic)
		outln(w)
	}
	out(w, "Seed '%s' stored (%s).\n", id, seed)
	return nil
}

// seedAddResult is the JSON shape of seed add. Mnemonic is only set for
// generated seeds.
type seedAddResult struct {
	ID            string         `json:"id"`
	Kind          string         `json:"kind"`
	Network       wallet.Network `json:"network"`
	RestoreHeight int64          `json:"restore_height"`
	Mnemonic      string         `json:"mnemonic,omitempty"`
}

// readNewSeed generates or prompts for the material of seed add.
func readNewSeed() (wallet.Seed, bool, error) {
	if seedGenerate != 0 {
		mnemonic, err := wallet.GenerateMnemonic(seedGenerate)
		if err != nil {
			return wallet.Seed{}, false, err
		}
		passphrase := ""
		if seedPassphrase {
			if passphrase, err = promptOptionalSecret("BIP39 passphrase"); err != nil {
				return wallet.Seed{}, false, err
			}
		}
		seed, err := wallet.NewBip39Seed(strings.Fields(mnemonic), passphrase)
		return seed, true, err
	}

	kind, err := wallet.ParseSeedKind(seedKind)
	if err != nil {
		return wallet.Seed{}, false, err
	}

	switch kind {
	case wallet.SeedWatchOnly:
		address, err := promptLineFn("Enter primary address: ")
		if err != nil {
			return wallet.Seed{}, false, err
		}
		view, err := promptSecretFn("Enter private view key: ")
		if err != nil {
			return wallet.Seed{}, false, err
		}
		defer wallet.ZeroBytes(view)
		if _, err := wallet.WatchOnlyKeys(address, string(view)); err != nil {
			return wallet.Seed{}, false, err
		}
		return wallet.NewWatchOnlySeed(address, string(view)), false, nil

	case wallet.SeedLegacy:
		words, err := promptMnemonic("Enter 25-word seed: ")
		if err != nil {
			return wallet.Seed{}, false, err
		}
		if _, err := wallet.DecodeLegacyMnemonic(words); err != nil {
			return wallet.Seed{}, false, err
		}
		offset := ""
		if seedPassphrase {
			if offset, err = promptOptionalSecret("seed offset"); err != nil {
				return wallet.Seed{}, false, err
			}
		}
		seed, err := wallet.NewLegacySeed(words, offset)
		return seed, false, err

	default:
		words, err := promptMnemonic("Enter BIP39 mnemonic: ")
		if err != nil {
			return wallet.Seed{}, false, err
		}
		if err := wallet.ValidateBip39Mnemonic(strings.Join(words, " ")); err != nil {
			return wallet.Seed{}, false, err
		}
		passphrase := ""
		if seedPassphrase {
			if passphrase, err = promptOptionalSecret("BIP39 passphrase"); err != nil {
				return wallet.Seed{}, false, err
			}
		}
		seed, err := wallet.NewBip39Seed(words, passphrase)
		return seed, false, err
	}
}

func runSeedList(_ *cobra.Command, _ []string) error {
	storage := seedStorage()
	ids, err := storage.List()
	if err != nil {
		return err
	}

	metas := make([]wallet.SeedMetadata, 0, len(ids))
	table := output.NewTable("ID", "KIND", "NETWORK", "RESTORE HEIGHT", "CREATED").AlignRight(3)
	for _, id := range ids {
		meta, err := storage.LoadMetadata(id)
		if err != nil {
			return err
		}
		metas = append(metas, meta)
		height := "-"
		if meta.RestoreHeight != wallet.UnsetRestoreHeight {
			height = strconv.FormatInt(meta.RestoreHeight, 10)
		}
		table.AddRow(meta.ID, meta.Kind, string(meta.Network), height, meta.CreatedAt.Local().Format(time.DateTime))
	}

	if !formatter.IsJSON() && len(metas) == 0 {
		return formatter.Print("No seeds stored. Add one with 'xmrkit seed add <id>'.")
	}
	return formatter.Rows(metas, table)
}

func runSeedRemove(_ *cobra.Command, args []string) error {
	id := args[0]
	storage := seedStorage()
	exists, err := storage.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return kiterr.WithDetails(kiterr.ErrWalletNotFound, map[string]string{"id": id})
	}
	if !seedYes && !promptConfirmFn(fmt.Sprintf("Remove seed '%s'? This cannot be undone.", id)) {
		return kiterr.WithSuggestion(kiterr.ErrInvalidInput, "removal cancelled")
	}
	if err := storage.Delete(id); err != nil {
		return err
	}
	logger.Info().Str("seed_id", id).Msg("seed removed")
	return output.FormatSuccess(formatter.Writer(), fmt.Sprintf("Seed '%s' removed.", id), formatter.Format())
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	seedAddCmd.Flags().StringVar(&seedKind, "kind", "bip39", "seed kind: bip39, legacy, watch-only")
	seedAddCmd.Flags().IntVar(&seedGenerate, "generate", 0, "generate a new BIP39 mnemonic with 12, 18 or 24 words")
	seedAddCmd.Flags().StringVar(&seedRestoreHeight, "restore-height", "", "restore height or wallet creation date")
	seedAddCmd.Flags().BoolVar(&seedPassphrase, "passphrase", false, "prompt for a BIP39 passphrase or seed offset")
	seedRemoveCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "skip the confirmation prompt")
	seedCmd.AddCommand(seedAddCmd, seedListCmd, seedRemoveCmd)
	rootCmd.AddCommand(seedCmd)
}
