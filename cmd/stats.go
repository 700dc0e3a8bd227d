package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/affscope/affscope/pkg/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the cached business records, per corp type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("dbpath")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("cache not found: %s", dbPath)
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No data in the cache to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CORP TYPE\tACCOUNTS\tRECORDS")
		total := 0
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t%d\n", s.CorpType, s.AccountCount, s.RecordCount)
			total += s.RecordCount
		}
		fmt.Fprintf(w, "TOTAL\t\t%d\n", total)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
