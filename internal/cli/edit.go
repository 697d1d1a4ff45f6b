package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a product; only the given fields change",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("name", "", "Product name")
	editCmd.Flags().String("description", "", "Description")
	editCmd.Flags().Float64("price", 0, "Price")
	editCmd.Flags().String("status", "", "available or out-of-stock")
	editCmd.Flags().Bool("recommended", false, "Recommended flag")
	editCmd.Flags().Bool("bestseller", false, "Bestseller flag")
}

func runEdit(cmd *cobra.Command, args []string) error {
	patch, err := patchFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.New("nothing to change, pass at least one field flag")
	}

	a := newApp(cliNotifier(cmd), nil)
	defer a.Close()

	// the edit dialog starts from the loaded values
	if err := a.listView.Load(cmd.Context()); err != nil {
		return err
	}
	return a.listView.SaveEdit(cmd.Context(), args[0], patch)
}

// patchFromFlags sets only the fields whose flags were given.
func patchFromFlags(flags *pflag.FlagSet) (models.ProductPatch, error) {
	var patch models.ProductPatch

	if flags.Changed("name") {
		v, err := flags.GetString("name")
		if err != nil {
			return patch, err
		}
		patch.Name = &v
	}
	if flags.Changed("description") {
		v, err := flags.GetString("description")
		if err != nil {
			return patch, err
		}
		patch.Description = &v
	}
	if flags.Changed("price") {
		v, err := flags.GetFloat64("price")
		if err != nil {
			return patch, err
		}
		patch.Price = &v
	}
	if flags.Changed("status") {
		v, err := flags.GetString("status")
		if err != nil {
			return patch, err
		}
		status := models.Status(v)
		patch.Status = &status
	}
	if flags.Changed("recommended") {
		v, err := flags.GetBool("recommended")
		if err != nil {
			return patch, err
		}
		patch.IsRecommended = &v
	}
	if flags.Changed("bestseller") {
		v, err := flags.GetBool("bestseller")
		if err != nil {
			return patch, err
		}
		patch.IsBestseller = &v
	}

	return patch, nil
}
