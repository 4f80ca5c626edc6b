package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"catalog/internal/models"
	"catalog/internal/shell"
)

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return shell.RenderProduct(cmd.OutOrStdout(), p)
		},
	}
}

func newCreateCommand(opts *options) *cobra.Command {
	var name, description, price, image string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}
			input := models.CreateProductInput{
				Name:        name,
				Description: description,
				Price:       d,
			}
			if cmd.Flags().Changed("image") {
				input.Image = &image
			}

			p, err := opts.client().CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			return shell.RenderProduct(cmd.OutOrStdout(), p)
		},
	}

	createCmd.Flags().StringVar(&name, "name", "", "Product name (required, at most 100 characters)")
	createCmd.Flags().StringVar(&description, "description", "", "Product description (required, at most 500 characters)")
	createCmd.Flags().StringVar(&price, "price", "", "Price, greater than zero")
	createCmd.Flags().StringVar(&image, "image", "", "Image URL")
	_ = createCmd.MarkFlagRequired("price")
	return createCmd
}

func newUpdateCommand(opts *options) *cobra.Command {
	var name, description, price, image string
	var clearImage bool

	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a product",
		Long: `Change some fields of a product. Only the flags given are sent;
a blank --name or --description is ignored by the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var input models.UpdateProductInput

			if flags.Changed("name") {
				input.Name = &name
			}
			if flags.Changed("description") {
				input.Description = &description
			}
			if flags.Changed("price") {
				d, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid --price %q: %w", price, err)
				}
				input.Price = &d
			}
			switch {
			case clearImage && flags.Changed("image"):
				return errors.New("--image and --clear-image are mutually exclusive")
			case clearImage:
				input.Image = models.NullString()
			case flags.Changed("image"):
				input.Image = models.SomeString(image)
			}
			if input.IsEmpty() {
				return errors.New("nothing to update: pass at least one of --name, --description, --price, --image, --clear-image")
			}

			p, err := opts.client().UpdateProduct(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return shell.RenderProduct(cmd.OutOrStdout(), p)
		},
	}

	updateCmd.Flags().StringVar(&name, "name", "", "New name")
	updateCmd.Flags().StringVar(&description, "description", "", "New description")
	updateCmd.Flags().StringVar(&price, "price", "", "New price, greater than zero")
	updateCmd.Flags().StringVar(&image, "image", "", "New image URL, stored as given (use --clear-image to remove it)")
	updateCmd.Flags().BoolVar(&clearImage, "clear-image", false, "Remove the image")
	return updateCmd
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
