package account

import (
	"github.com/klind25/teller/cmd/util"
	"github.com/klind25/teller/rpc/client"
	"github.com/spf13/cobra"
)

var (
	bank client.IBankClient

	// AccountCommands represents the account command group
	AccountCommands = &cobra.Command{
		Use:               "account",
		Short:             "Perform account operations",
		PersistentPreRunE: setupBankClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the account command
	util.SetupRPCClientFlags(AccountCommands)

	// Add subcommands
	AccountCommands.AddCommand(depositCmd)
	AccountCommands.AddCommand(withdrawCmd)
	AccountCommands.AddCommand(balanceCmd)
	AccountCommands.AddCommand(quitCmd)
	AccountCommands.AddCommand(perfTestCmd)
}

// setupBankClient initializes the RPC bank client
func setupBankClient(cmd *cobra.Command, _ []string) error {
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
