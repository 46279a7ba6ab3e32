package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/salespoint/internal/api/client"
	"github.com/spf13/cobra"
)

func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Short:   "Product catalog commands",
		Aliases: []string{"product", "p"},
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsLowStockCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			products, err := c.ListProducts(false)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBARCODE\tPRICE\tSTOCK\tREORDER AT")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%d\n",
					p.ID, p.Name, p.Barcode, p.UnitPrice, p.Quantity, p.ReorderLevel)
			}
			return w.Flush()
		},
	}
}

func newProductsLowStockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below their reorder level",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %v", err)
			}

			products, err := c.ListProducts(true)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println("No products below reorder level.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTOCK\tREORDER AT")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", p.ID, p.Name, p.Quantity, p.ReorderLevel)
			}
			return w.Flush()
		},
	}
}
