package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := newApp(cliNotifier(cmd), nil)
		defer a.Close()

		if err := a.listView.Load(cmd.Context()); err != nil {
			return err
		}
		return printProducts(cmd.OutOrStdout(), a.listView.Products())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printProducts(out io.Writer, products []models.Product) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tPRICE\tSTATUS\tRECOMMENDED\tBESTSELLER")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n",
			p.ID, p.Name, p.Description, strconv.FormatFloat(p.Price, 'f', -1, 64), p.Status, p.IsRecommended, p.IsBestseller)
	}
	return w.Flush()
}

func cliNotifier(cmd *cobra.Command) writerNotifier {
	return writerNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}
