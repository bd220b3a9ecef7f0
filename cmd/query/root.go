package query

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stratadb/strata-go/client"
	"github.com/stratadb/strata-go/cmd/util"
	"github.com/stratadb/strata-go/rows"
)

var (
	strataClient *client.Client

	// QueryCmd runs a document query and prints the result table
	QueryCmd = &cobra.Command{
		Use:   "query [path]",
		Short: "Runs a query against a document path",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			var err error
			strataClient, err = util.NewClient()
			return err
		},
		RunE: runQuery,
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(QueryCmd)

	QueryCmd.Flags().Uint32("limit", 0, util.WrapString("Maximum number of rows to return (0 for no limit)"))
	QueryCmd.Flags().Uint32("offset", 0, util.WrapString("Number of rows to skip"))
	QueryCmd.Flags().String("columns", "", util.WrapString("Columns to return (comma separated, empty for all)"))
}

func runQuery(_ *cobra.Command, args []string) error {
	var columns []string
	if cols := viper.GetString("columns"); cols != "" {
		columns = strings.Split(cols, ",")
	}

	result, err := strataClient.Query(
		args[0],
		viper.GetUint32("limit"),
		viper.GetUint32("offset"),
		columns,
	)
	if err != nil {
		return err
	}

	if len(result.Columns()) > 0 {
		fmt.Println(strings.Join(result.Columns(), "\t"))
	}
	result.Each(func(row rows.Row) bool {
		fields := make([]string, len(result.Columns()))
		for i := range fields {
			fields[i] = row.Field(i)
		}
		fmt.Println(strings.Join(fields, "\t"))
		return true
	})
	fmt.Printf("%d row(s)\n", result.Len())

	return nil
}
