package cmd

import (
	"github.com/spf13/cobra"

	"github.com/affscope/affscope/internal/server"
	"github.com/affscope/affscope/pkg/source"
)

// serveCmd implements: affscope serve
//
// Serves the classified table over a JSON API. Records come from a payload
// file or the local cache, same as 'affscope list'.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classified business table as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("listen")

		srv := server.New(source.NewListCollection(records), newClassifier())
		return srv.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().StringP("file", "F", "", "Affiliations payload file (JSON)")
	serveCmd.Flags().StringP("account", "a", "", "Account whose cached records to serve")
}
