package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/affscope/affscope/internal/utils"
	"github.com/affscope/affscope/pkg/corps"
	"github.com/affscope/affscope/pkg/entity"
	"github.com/affscope/affscope/pkg/featureflags"
	"github.com/affscope/affscope/pkg/source"
	"github.com/affscope/affscope/pkg/storage"
	"github.com/affscope/affscope/pkg/table"
)

// listCmd implements: affscope list
//
// Reads records from a payload file (--file) or from the local cache
// (--dbpath), classifies them, applies column filters, and prints one line
// per business using the output format flags.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Classify affiliated businesses and print them as table rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}

		outputFlags, _ := cmd.Flags().GetString("output")
		delimiter, _ := cmd.Flags().GetString("delimiter")
		filters, _ := cmd.Flags().GetStringSlice("filter")

		classifier := newClassifier()
		store := table.NewStore(source.NewListCollection(records), classifier)
		defer store.Close()

		for _, f := range filters {
			col, value, found := strings.Cut(f, "=")
			if !found {
				return fmt.Errorf("invalid filter %q, expected column=value", f)
			}
			store.UpdateFilter(col, value)
		}
		store.Load("", "")

		state := store.State()
		utils.Log.Debug("Listing ", state.Total, " of ", store.EntityCount(), " businesses")
		for _, b := range state.Results {
			fmt.Println(createLine(classifier, b, outputFlags, delimiter))
		}
		return nil
	},
}

// createLine renders one business as a delimited line according to the
// output format flags.
func createLine(c *entity.Classifier, b entity.Business, outputFlags, delimiter string) string {
	var line string
	for _, f := range outputFlags {
		switch f {
		case 'n':
			line += c.Name(b) + delimiter
		case 'i':
			line += c.Number(b) + delimiter
		case 't':
			line += c.Type(b) + delimiter
		case 'd':
			line += c.TypeDescription(b) + delimiter
		case 's':
			line += c.Status(b) + delimiter
		case 'e':
			line += strconv.FormatBool(c.CanUseNameRequest(b)) + delimiter
		default:
			utils.Log.Fatal("Invalid print flag")
		}
	}
	return strings.TrimSuffix(line, delimiter)
}

// newClassifier wires the default collaborators: static corp type
// descriptions and viper-backed feature flags.
func newClassifier() *entity.Classifier {
	return entity.NewClassifier(corps.New(), featureflags.Viper{})
}

// loadRecords reads business records from the payload file when --file is
// given, falling back to the local cache.
func loadRecords(cmd *cobra.Command) ([]entity.Business, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return source.DecodeAffiliations(string(body)), nil
	}

	dbPath, _ := cmd.Flags().GetString("dbpath")
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no payload file given and cache not found: %s", dbPath)
		}
		return nil, err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	account, _ := cmd.Flags().GetString("account")
	if account == "" {
		account = viper.GetString("account")
	}
	entries, err := db.ListEntries(context.Background(), storage.ListOptions{Account: account})
	if err != nil {
		return nil, err
	}

	records := make([]entity.Business, 0, len(entries))
	for _, e := range entries {
		b, err := e.Record()
		if err != nil {
			utils.Log.Warn("Skipping malformed cached record ", e.Key, ": ", err)
			continue
		}
		records = append(records, b)
	}
	return records, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("file", "F", "", "Affiliations payload file (JSON)")
	listCmd.Flags().StringP("account", "a", "", "Account whose cached records to list")
	listCmd.Flags().StringP("output", "o", "nits", "Output flags: n (name), i (identifier), t (type), d (type description), s (status), e (name request eligibility)")
	listCmd.Flags().StringP("delimiter", "D", " ", "Delimiter character used when printing multiple columns")
	listCmd.Flags().StringSliceP("filter", "f", nil, "Column filter as column=value (repeatable). Columns: Name, Number, Type, Status")
}
