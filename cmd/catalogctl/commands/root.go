// Package commands holds the cobra command tree of catalogctl.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"catalog/pkg/client"
)

const (
	apiFlag    = "api"
	apiEnvKey  = "catalog_api"
	defaultAPI = "http://localhost:8080"
)

// options is shared by every subcommand of one root.
type options struct {
	v *viper.Viper
}

func (o *options) client() *client.Client {
	return client.New(o.v.GetString(apiEnvKey))
}

// NewRootCommand builds the catalogctl command tree. The API base URL comes from
// --api, then CATALOG_API, then the local default.
func NewRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}
	opts.v.SetDefault(apiEnvKey, defaultAPI)
	opts.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse and edit the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(apiFlag, defaultAPI, "Base URL of the catalog API (env CATALOG_API)")
	_ = opts.v.BindPFlag(apiEnvKey, rootCmd.PersistentFlags().Lookup(apiFlag))

	rootCmd.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
		newBrowseCommand(opts),
	)
	return rootCmd
}
