package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	convertAccount    uint32
	convertPassphrase bool
	convertSeed       string
)

// convertCmd turns a BIP39 mnemonic into a 25-word legacy seed.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a BIP39 mnemonic to a 25-word Monero seed",
	Long: `Convert a BIP39 mnemonic to the 25-word legacy Monero mnemonic used by
Monero wallets. The spend key is derived at m/44'/128'/<account>'/0/0.

The mnemonic is read with hidden input, or from a stored seed.

Example:
  xmrkit convert
  xmrkit convert --passphrase --account 1
  xmrkit convert --seed main -o json`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

// convertResult is the JSON shape of a conversion.
type convertResult struct {
	Account  uint32   `json:"account"`
	Path     string   `json:"path"`
	Mnemonic string   `json:"mnemonic"`
	Words    []string `json:"words"`
}

func runConvert(_ *cobra.Command, _ []string) error {
	seed, err := readSeed(convertSeed, convertPassphrase)
	if err != nil {
		return err
	}
	if seed.Kind() != wallet.SeedBip39 {
		return kiterr.WithSuggestion(
			kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"kind": seed.Kind().String()}),
			"only BIP39 mnemonics can be converted",
		)
	}

	words, err := wallet.ConvertWords(seed.Words(), seed.Passphrase(), convertAccount)
	if err != nil {
		return err
	}
	logger.Debug().Uint32("account", convertAccount).Msg("mnemonic converted")

	res := convertResult{
		Account:  convertAccount,
		Path:     wallet.DerivationPath(convertAccount),
		Mnemonic: strings.Join(words, " "),
		Words:    words,
	}
	if formatter.IsJSON() {
		return formatter.Print(res)
	}

	w := formatter.Writer()
	out(w, "Derivation path: %s\n\n", res.Path)
	table := output.NewTable("#", "WORD").AlignRight(0)
	for i, word := range words {
		table.AddRow(strconv.Itoa(i+1), word)
	}
	if err := table.Render(w); err != nil {
		return err
	}
	out(w, "\n%s\n", res.Mnemonic)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	convertCmd.Flags().Uint32Var(&convertAccount, "account", 0, "BIP44 account index")
	convertCmd.Flags().BoolVar(&convertPassphrase, "passphrase", false, "prompt for a BIP39 passphrase")
	convertCmd.Flags().StringVar(&convertSeed, "seed", "", "use a stored seed instead of prompting")
	rootCmd.AddCommand(convertCmd)
}
