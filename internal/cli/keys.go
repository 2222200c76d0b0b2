package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	keysSeed       string
	keysPassphrase bool
	keysNetwork    string
	keysSubaddrs   uint32
)

// keysCmd prints the key set and addresses of a seed.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keys and primary address of a seed",
	Long: `Derive the private and public spend and view keys of a seed together with
its primary address. Watch-only seeds have no private spend key.

Legacy seeds with a seed offset cannot be derived locally.

Example:
  xmrkit keys
  xmrkit keys --seed main --subaddresses 5
  xmrkit keys --network stagenet -o json`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

// keysResult is the JSON shape of the keys command.
type keysResult struct {
	wallet.Keys

	Network      wallet.Network `json:"network"`
	Address      string         `json:"address"`
	Subaddresses []string       `json:"subaddresses,omitempty"`
}

func runKeys(_ *cobra.Command, _ []string) error {
	network := cfg.GetNetwork()
	if keysNetwork != "" {
		n, err := wallet.ParseNetwork(keysNetwork)
		if err != nil {
			return err
		}
		network = n
	}

	seed, err := readSeed(keysSeed, keysPassphrase)
	if err != nil {
		return err
	}

	var keys wallet.Keys
	if seed.Kind() == wallet.SeedWatchOnly {
		keys, err = wallet.WatchOnlyKeys(seed.Address(), seed.ViewKey())
	} else {
		keys, err = wallet.DeriveKeys(seed)
	}
	if err != nil {
		return err
	}

	res := keysResult{Keys: keys, Network: network}
	if res.Address, err = keys.Address(network); err != nil {
		return err
	}
	for i := uint32(1); i <= keysSubaddrs; i++ {
		sub, err := keys.Subaddress(network, 0, i)
		if err != nil {
			return err
		}
		res.Subaddresses = append(res.Subaddresses, sub)
	}

	fields := []output.Field{
		{Key: "Network", Value: string(network)},
		{Key: "Address", Value: res.Address},
	}
	if keys.PrivateSpendKey != "" {
		fields = append(fields, output.Field{Key: "Private spend key", Value: keys.PrivateSpendKey})
	}
	fields = append(fields,
		output.Field{Key: "Public spend key", Value: keys.PublicSpendKey},
		output.Field{Key: "Private view key", Value: keys.PrivateViewKey},
		output.Field{Key: "Public view key", Value: keys.PublicViewKey},
	)
	if err := formatter.Record(res, fields); err != nil {
		return err
	}

	if !formatter.IsJSON() && len(res.Subaddresses) > 0 {
		table := output.NewTable("INDEX", "SUBADDRESS").AlignRight(0)
		for i, sub := range res.Subaddresses {
			table.AddRow("0/"+strconv.Itoa(i+1), sub)
		}
		outln(formatter.Writer())
		return table.Render(formatter.Writer())
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	keysCmd.Flags().StringVar(&keysSeed, "seed", "", "use a stored seed instead of prompting")
	keysCmd.Flags().BoolVar(&keysPassphrase, "passphrase", false, "prompt for a BIP39 passphrase or seed offset")
	keysCmd.Flags().StringVar(&keysNetwork, "network", "", "network: mainnet, stagenet, testnet (default from config)")
	keysCmd.Flags().Uint32Var(&keysSubaddrs, "subaddresses", 0, "also list this many subaddresses of account 0")
	rootCmd.AddCommand(keysCmd)
}
