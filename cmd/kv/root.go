package kv

import (
	"github.com/spf13/cobra"
	"github.com/stratadb/strata-go/client"
	"github.com/stratadb/strata-go/cmd/util"
)

var (
	strataClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value and path operations",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(scanCmd)
	KeyValueCommands.AddCommand(psetCmd)
	KeyValueCommands.AddCommand(pgetCmd)
	KeyValueCommands.AddCommand(createTableCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the client connection
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	strataClient, err = util.NewClient()
	return err
}
