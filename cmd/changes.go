package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/affscope/affscope/pkg/storage"
)

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Prints the most recent changes to the cached business records.",
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

		limit, _ := cmd.Flags().GetInt("limit")
		changes, err := db.ListRecentChanges(cmd.Context(), limit)
		if err != nil {
			return err
		}

		for _, c := range changes {
			fmt.Printf("%s [%s] %s %s %s\n", c.OccurredAt.Format("2006-01-02 15:04:05"), c.ChangeType, c.Account, c.Key, c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().Int("limit", 50, "Maximum number of changes to print")
}
