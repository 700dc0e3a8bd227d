package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/affscope/affscope/internal/utils"
	"github.com/affscope/affscope/pkg/source"
	"github.com/affscope/affscope/pkg/storage"
)

// syncCmd implements: affscope sync
//
// Imports an already-fetched affiliations payload into the local cache and
// prints what changed since the previous import.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import an affiliations payload into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("missing payload file, see 'affscope sync --help'")
		}

		account, _ := cmd.Flags().GetString("account")
		if account == "" {
			account = viper.GetString("account")
		}
		if account == "" {
			return fmt.Errorf("missing account identifier, pass --account or set it in the config")
		}

		body, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		records := source.DecodeAffiliations(string(body))
		utils.Log.Info("Decoded ", len(records), " businesses from ", file)

		entries, err := storage.BuildEntries(account, records)
		if err != nil {
			return err
		}

		dbPath, _ := cmd.Flags().GetString("dbpath")
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.UpsertAccountEntries(cmd.Context(), account, entries)
		if err != nil {
			return err
		}

		if len(changes) == 0 {
			utils.Log.Info("No changes since last sync")
			return nil
		}
		for _, c := range changes {
			fmt.Printf("[%s] %s %s\n", c.ChangeType, c.Key, c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringP("file", "F", "", "Affiliations payload file (JSON)")
	syncCmd.Flags().StringP("account", "a", "", "Account the payload belongs to")
}
