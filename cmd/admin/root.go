package admin

import (
	"fmt"
	"os"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/stratadb/strata-go/client"
	"github.com/stratadb/strata-go/cmd/util"
)

var (
	strataClient *client.Client

	// AdminCommands represents the administration command group
	AdminCommands = &cobra.Command{
		Use:               "admin",
		Short:             "Server administration and diagnostics",
		PersistentPreRunE: setupAdminClient,
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints server statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := strataClient.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("keys      : %d\n", stats.Keys)
			fmt.Printf("tables    : %d\n", stats.Tables)
			fmt.Printf("disk bytes: %d\n", stats.DiskBytes)
			fmt.Printf("uptime    : %d sec\n", stats.UptimeSeconds)
			return nil
		},
	}

	checkpointCmd = &cobra.Command{
		Use:   "checkpoint",
		Short: "Forces a server checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := strataClient.Checkpoint(); err != nil {
				return err
			}
			fmt.Println("checkpoint complete")
			return nil
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks whether the server is alive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strataClient.Ping() {
				fmt.Println("alive")
				return nil
			}
			fmt.Println("not alive")
			os.Exit(1)
			return nil
		},
	}

	metricsCmd = &cobra.Command{
		Use:   "metrics",
		Short: "Prints client-side connection metrics in Prometheus format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// touch the connection once so the counters are meaningful
			strataClient.Ping()

			stats := strataClient.TransportStats()
			fmt.Printf("# bytes written: %d, bytes read: %d\n", stats.BytesWritten, stats.BytesRead)

			metrics.WritePrometheus(os.Stdout, false)
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(AdminCommands)

	AdminCommands.AddCommand(statsCmd)
	AdminCommands.AddCommand(checkpointCmd)
	AdminCommands.AddCommand(pingCmd)
	AdminCommands.AddCommand(metricsCmd)
}

func setupAdminClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	strataClient, err = util.NewClient()
	return err
}
