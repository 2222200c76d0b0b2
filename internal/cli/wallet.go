package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/kit"
	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	walletDir string
	walletYes bool
)

// walletCmd is the parent command for engine wallet files.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect and delete engine wallet files",
	Long: `Every wallet the engine opens is stored as three files in the wallet
directory: <id> (cache), <id>.keys and <id>.address.txt.`,
}

// walletFilesCmd shows which engine files of a wallet exist.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletFilesCmd = &cobra.Command{
	Use:   "files <id>",
	Short: "Show the engine files of a wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalletFiles,
}

// walletDeleteCmd removes the engine files of a wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete the engine files of a wallet",
	Long: `Delete the cache, keys and address files of a wallet. Stored seeds are
not touched. The engine rebuilds the wallet from its seed on the next start.

Example:
  xmrkit wallet delete main --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletDelete,
}

// walletFile is one row of wallet files.
type walletFile struct {
	Role   string `json:"role"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func resolveWalletDir() string {
	if walletDir != "" {
		return walletDir
	}
	return cfg.GetWalletDir()
}

func runWalletFiles(_ *cobra.Command, args []string) error {
	id := args[0]
	if err := wallet.ValidateWalletID(id); err != nil {
		return err
	}

	files := kit.FilesOf(resolveWalletDir(), id)
	rows := make([]walletFile, 0, 3)
	table := output.NewTable("ROLE", "EXISTS", "PATH")
	for i, role := range []string{"cache", "keys", "address"} {
		path := files.Paths()[i]
		ok, err := fileutil.Exists(path)
		if err != nil {
			return err
		}
		rows = append(rows, walletFile{Role: role, Path: path, Exists: ok})
		table.AddRow(role, yesNo(ok), path)
	}
	return formatter.Rows(rows, table)
}

func runWalletDelete(_ *cobra.Command, args []string) error {
	id := args[0]
	dir := resolveWalletDir()
	if err := wallet.ValidateWalletID(id); err != nil {
		return err
	}

	existing, err := kit.FilesOf(dir, id).Existing()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return kiterr.WithDetails(kiterr.ErrWalletNotFound, map[string]string{"id": id, "dir": dir})
	}
	if !walletYes && !promptConfirmFn(fmt.Sprintf("Delete %d engine file(s) of wallet '%s'?", len(existing), id)) {
		return kiterr.WithSuggestion(kiterr.ErrInvalidInput, "deletion cancelled")
	}

	deleted, err := kit.DeleteWallet(dir, id)
	if err != nil {
		return err
	}
	logger.Info().Str("wallet_id", id).Bool("complete", deleted).Msg("wallet files deleted")

	msg := fmt.Sprintf("Wallet '%s' deleted.", id)
	if !deleted {
		msg = fmt.Sprintf("Wallet '%s' had no keys file; removed %d leftover file(s).", id, len(existing))
	}
	return output.FormatSuccess(formatter.Writer(), msg, formatter.Format())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletCmd.PersistentFlags().StringVar(&walletDir, "dir", "", "wallet directory (default: <home>/wallets)")
	walletDeleteCmd.Flags().BoolVarP(&walletYes, "yes", "y", false, "skip the confirmation prompt")
	walletCmd.AddCommand(walletFilesCmd, walletDeleteCmd)
	rootCmd.AddCommand(walletCmd)
}
