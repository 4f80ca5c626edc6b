package commands

import (
	"github.com/spf13/cobra"

	"catalog/internal/shell"
	"catalog/pkg/query"
)

func newBrowseCommand(opts *options) *cobra.Command {
	var pageSize int

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactive shell for filtering, paging and editing products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := shell.NewSession(opts.client(), pageSize)
			return shell.New(session, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	browseCmd.Flags().IntVar(&pageSize, "page-size", query.DefaultPageSize, "Products per page")
	return browseCmd
}
