package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().String("name", "", "Product name (max 50 characters)")
	addCmd.Flags().String("description", "", "Description (at least 10 characters)")
	addCmd.Flags().Float64("price", 0, "Price, greater than zero")
	addCmd.Flags().String("status", string(models.StatusAvailable), "available or out-of-stock")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	description, _ := flags.GetString("description")
	price, _ := flags.GetFloat64("price")
	status, _ := flags.GetString("status")

	a := newApp(cliNotifier(cmd), nil)
	defer a.Close()

	form := a.newForm()
	form.Set(models.NewProduct{
		Name:        name,
		Description: description,
		Price:       models.Price(price),
		Status:      models.Status(status),
	})

	created, err := form.Submit(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
	return printProducts(cmd.OutOrStdout(), a.listView.Products())
}
