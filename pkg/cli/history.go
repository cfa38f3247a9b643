package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/devsapp/model-packager/pkg/config"
	"github.com/devsapp/model-packager/pkg/history"
	"github.com/spf13/cobra"
)

var historyBackend string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded model package uploads",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyBackend, "backend", string(history.SQLite), "history backend sqlite|tableStore")
}

func runHistory(cmd *cobra.Command, args []string) error {
	logInit(logLevel)
	if err := config.InitConfig(configFile); err != nil {
		return err
	}

	store, err := (&history.StoreFactory{}).New(history.StoreType(historyBackend))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tADDRESS\tSIZE\tUPLOADED")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", record.ModelName, record.Address, record.SizeBytes, record.CreateTime)
	}
	return w.Flush()
}
