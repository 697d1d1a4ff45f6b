package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/znsio/specmatic-catalog-admin-go/internal/handlers"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Confirm without prompting")
}

func runDelete(cmd *cobra.Command, args []string) error {
	assumeYes, _ := cmd.Flags().GetBool("yes")

	a := newApp(cliNotifier(cmd), nil)
	defer a.Close()

	if err := a.listView.Load(cmd.Context()); err != nil {
		return err
	}

	product, err := a.listView.SelectForDelete(args[0])
	if err != nil {
		return err
	}

	if !assumeYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), handlers.DeletePrompt(product)) {
		a.listView.CancelDelete()
		fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	}

	_, err = a.listView.ConfirmDelete(cmd.Context())
	return err
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
