package txn

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stratadb/strata-go/client"
	"github.com/stratadb/strata-go/cmd/util"
	"github.com/stratadb/strata-go/common"
)

var (
	strataClient *client.Client

	// TxnCommands represents the transaction command group
	TxnCommands = &cobra.Command{
		Use:               "txn",
		Short:             "Manage server-side transactions",
		PersistentPreRunE: setupTxnClient,
	}

	beginCmd = &cobra.Command{
		Use:   "begin",
		Short: "Begins a transaction and prints its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := strataClient.Begin()
			if err != nil {
				return err
			}
			fmt.Println(t.ID())
			return nil
		},
	}

	commitCmd = &cobra.Command{
		Use:   "commit",
		Short: "Commits the transaction given by --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settle(common.OpCommitTxn)
		},
	}

	abortCmd = &cobra.Command{
		Use:   "abort",
		Short: "Aborts the transaction given by --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settle(common.OpAbortTxn)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(TxnCommands)

	TxnCommands.PersistentFlags().Uint64("id", 0, util.WrapString("Transaction id as printed by 'txn begin'"))

	TxnCommands.AddCommand(beginCmd)
	TxnCommands.AddCommand(commitCmd)
	TxnCommands.AddCommand(abortCmd)
}

func setupTxnClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	strataClient, err = util.NewClient()
	return err
}

// settle resumes a transaction handle from the --id flag and commits or
// aborts it
func settle(op common.Opcode) error {
	id := viper.GetUint64("id")
	if id == 0 {
		return fmt.Errorf("--id is required")
	}

	t := strataClient.Resume(id)

	var err error
	if op == common.OpCommitTxn {
		err = t.Commit()
	} else {
		err = t.Abort()
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s successful\n", op)
	return nil
}
