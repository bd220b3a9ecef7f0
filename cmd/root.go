package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stratadb/strata-go/cmd/admin"
	"github.com/stratadb/strata-go/cmd/kv"
	"github.com/stratadb/strata-go/cmd/query"
	"github.com/stratadb/strata-go/cmd/txn"
	"github.com/stratadb/strata-go/cmd/util"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "strata",
		Short: "client for the StrataDB key-value/document store",
		Long: fmt.Sprintf(`strata (v%s)

Command-line client for the StrataDB key-value/document store,
speaking the binary frame protocol over unix or tcp sockets.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the strata client",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("strata v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(query.QueryCmd)
	RootCmd.AddCommand(txn.TxnCommands)
	RootCmd.AddCommand(admin.AdminCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "unix", util.WrapString("transport to use (unix, tcp)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
