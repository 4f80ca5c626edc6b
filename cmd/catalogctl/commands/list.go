package commands

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"catalog/internal/shell"
	"catalog/pkg/query"
)

const (
	queryFlag    = "query"
	minPriceFlag = "min-price"
	maxPriceFlag = "max-price"
	sortFlag     = "sort"
)

func newListCommand(opts *options) *cobra.Command {
	filterFlags := map[string]cobraflags.Flag{
		queryFlag: &cobraflags.StringFlag{
			Name:  queryFlag,
			Value: "",
			Usage: "Case-insensitive text matched against name or description",
		},
		minPriceFlag: &cobraflags.StringFlag{
			Name:  minPriceFlag,
			Value: "",
			Usage: "Lowest price to show; ignored unless it starts with a number",
		},
		maxPriceFlag: &cobraflags.StringFlag{
			Name:  maxPriceFlag,
			Value: "",
			Usage: "Highest price to show; ignored unless it starts with a number",
		},
		sortFlag: &cobraflags.StringFlag{
			Name:  sortFlag,
			Value: string(query.SortDefault),
			Usage: "Sort order: default, price-asc or price-desc",
		},
	}
	var page, pageSize int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products after filtering and sorting",
		Example: `  catalogctl list --query mouse --max-price 50
  catalogctl list --sort price-desc --page 2 --page-size 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := opts.client().ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			res := query.Apply(items, query.Params{
				Query:    filterFlags[queryFlag].GetString(),
				MinPrice: filterFlags[minPriceFlag].GetString(),
				MaxPrice: filterFlags[maxPriceFlag].GetString(),
				Sort:     query.ParseSort(filterFlags[sortFlag].GetString()),
				Page:     page,
				PageSize: pageSize,
			})
			return shell.RenderPage(cmd.OutOrStdout(), res)
		},
	}

	cobraflags.RegisterMap(listCmd, filterFlags)
	listCmd.Flags().IntVar(&page, "page", 1, "Page to show; clamped to the available pages")
	listCmd.Flags().IntVar(&pageSize, "page-size", query.DefaultPageSize, "Products per page")
	return listCmd
}
