package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klind25/teller/cmd/util"
	"github.com/klind25/teller/rpc/client"
	"github.com/spf13/cobra"
)

var (
	bank client.IBankClient

	// FileCommands represents the files command group
	FileCommands = &cobra.Command{
		Use:               "files",
		Short:             "Transfer files to and from the server",
		PersistentPreRunE: setupFileClient,
	}

	// uploadCmd represents the upload command
	uploadCmd = &cobra.Command{
		Use:   "upload [account] [path]",
		Short: "Upload a local file to an account",
		Long:  "Upload a local file to an account. The file is stored on the server under its base name.",
		Args:  cobra.ExactArgs(2),
		RunE:  runUpload,
	}

	// downloadCmd represents the download command
	downloadCmd = &cobra.Command{
		Use:   "download [account] [name]",
		Short: "Download a file from an account",
		Long:  "Download a file from an account and write it to the local working directory (or to the path given with --out).",
		Args:  cobra.ExactArgs(2),
		RunE:  runDownload,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add subcommands to files command
	FileCommands.AddCommand(uploadCmd)
	FileCommands.AddCommand(downloadCmd)

	// Add common RPC flags to the files command
	util.SetupRPCClientFlags(FileCommands)

	// Add flags specific to download
	downloadCmd.Flags().String("out", "", "Local path to write the downloaded file to")
}

// setupFileClient initializes the RPC bank client
func setupFileClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport(s)
	if err != nil {
		return err
	}

	// Create the bank client
	bank, err = client.NewRPCBankClient(
		*config,
		t,
	)

	return err
}

// runUpload handles the upload command
func runUpload(_ *cobra.Command, args []string) error {
	accountID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("account must be a number: %w", err)
	}
	path := args[1]

	// Read the local file
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Store it under its base name
	name := filepath.Base(path)
	if err := bank.Save(accountID, name, data); err != nil {
		return err
	}

	fmt.Printf("uploaded %s (%d bytes) to account %d\n", name, len(data), accountID)
	return nil
}

// runDownload handles the download command
func runDownload(cmd *cobra.Command, args []string) error {
	accountID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("account must be a number: %w", err)
	}
	name := args[1]

	// Fetch the file
	data, err := bank.Load(accountID, name)
	if err != nil {
		return err
	}

	// Write it to the local path
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("downloaded %s (%d bytes) to %s\n", name, len(data), out)
	return nil
}
