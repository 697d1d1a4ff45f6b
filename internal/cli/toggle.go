package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id> <isRecommended|isBestseller> <true|false>",
	Short: "Set a product flag",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := models.ParseFlagKey(args[1])
		if err != nil {
			return err
		}
		value, err := strconv.ParseBool(args[2])
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", args[2], err)
		}

		a := newApp(cliNotifier(cmd), nil)
		defer a.Close()

		return a.listView.Toggle(cmd.Context(), args[0], key, value)
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
