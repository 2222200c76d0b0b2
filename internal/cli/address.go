package cli

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	addressNetwork  string
	addressViewKey  bool
	addressSpendKey bool
)

// addressCmd is the parent command for address operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Inspect Monero addresses",
}

// addressValidateCmd decodes and checks an address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressValidateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Validate an address and optionally its private keys",
	Long: `Decode a standard, subaddress or integrated address and verify its checksum.

With --view-key or --spend-key the matching private key is prompted and
checked against the address.

Example:
  xmrkit address validate 44AFFq5kSiGBoZ...
  xmrkit address validate 44AFFq5kSiGBoZ... --network mainnet --view-key`,
	Args: cobra.ExactArgs(1),
	RunE: runAddressValidate,
}

// addressResult is the JSON shape of a validated address.
type addressResult struct {
	Address        string         `json:"address"`
	Network        wallet.Network `json:"network"`
	Type           string         `json:"type"`
	PublicSpendKey string         `json:"public_spend_key"`
	PublicViewKey  string         `json:"public_view_key"`
	PaymentID      string         `json:"payment_id,omitempty"`
	ViewKeyValid   *bool          `json:"view_key_valid,omitempty"`
	SpendKeyValid  *bool          `json:"spend_key_valid,omitempty"`
}

func runAddressValidate(_ *cobra.Command, args []string) error {
	address := args[0]

	var network wallet.Network
	if addressNetwork != "" {
		n, err := wallet.ParseNetwork(addressNetwork)
		if err != nil {
			return err
		}
		network = n
	}
	if err := wallet.ValidateAddress(address, network); err != nil {
		return err
	}
	decoded, err := wallet.DecodeAddress(address)
	if err != nil {
		return err
	}

	res := addressResult{
		Address:        address,
		Network:        decoded.Network,
		Type:           decoded.Type.String(),
		PublicSpendKey: hex.EncodeToString(decoded.PublicSpendKey[:]),
		PublicViewKey:  hex.EncodeToString(decoded.PublicViewKey[:]),
	}
	if len(decoded.PaymentID) > 0 {
		res.PaymentID = hex.EncodeToString(decoded.PaymentID)
	}

	if addressViewKey {
		if err := checkKey("private view key", address, wallet.ValidatePrivateViewKey); err != nil {
			return err
		}
		ok := true
		res.ViewKeyValid = &ok
	}
	if addressSpendKey {
		if err := checkKey("private spend key", address, wallet.ValidatePrivateSpendKey); err != nil {
			return err
		}
		ok := true
		res.SpendKeyValid = &ok
	}

	fields := []output.Field{
		{Key: "Network", Value: string(res.Network)},
		{Key: "Type", Value: res.Type},
		{Key: "Public spend key", Value: res.PublicSpendKey},
		{Key: "Public view key", Value: res.PublicViewKey},
	}
	if res.PaymentID != "" {
		fields = append(fields, output.Field{Key: "Payment ID", Value: res.PaymentID})
	}
	if res.ViewKeyValid != nil {
		fields = append(fields, output.Field{Key: "View key", Value: "matches"})
	}
	if res.SpendKeyValid != nil {
		fields = append(fields, output.Field{Key: "Spend key", Value: "matches"})
	}
	return formatter.Record(res, fields)
}

func checkKey(label, address string, validate func(key, address string) error) error {
	key, err := promptSecretFn("Enter " + label + ": ")
	if err != nil {
		return err
	}
	defer wallet.ZeroBytes(key)
	return validate(string(key), address)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	addressValidateCmd.Flags().StringVar(&addressNetwork, "network", "", "require the address to be on this network")
	addressValidateCmd.Flags().BoolVar(&addressViewKey, "view-key", false, "prompt for and check the private view key")
	addressValidateCmd.Flags().BoolVar(&addressSpendKey, "spend-key", false, "prompt for and check the private spend key")
	addressCmd.AddCommand(addressValidateCmd)
	rootCmd.AddCommand(addressCmd)
}
