package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/garunski/stylestore/pkg/stylestore"
	"github.com/garunski/stylestore/pkg/stylestore/server"
)

// localBackends are the backends stylectl can open without a running service.
var localBackends = []string{server.BackendFile, server.BackendBadger, server.BackendSQLite}

type options struct {
	backend string
	data    string
	codec   string
	verbose bool
}

// NewRootCmd builds the stylectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "stylectl",
		Short: "Manage feature type styles in a local style store",
		Long: `Manage feature type styles in a local style store.

Styles are keyed by feature type name. The file backend keeps each style in a
sidecar file next to the data (roads.shp -> roads.sld).

Examples:
  stylectl --data ./gis put roads roads.sld
  stylectl --data ./gis get roads
  stylectl --backend badger --data /var/lib/styles ls`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(localBackends, opts.backend) {
				return fmt.Errorf("unsupported backend %q, use one of %v", opts.backend, localBackends)
			}
			return nil
		},
	}

	defaults := stylestore.DefaultConfig()
	root.PersistentFlags().StringVar(&opts.backend, "backend", server.BackendFile, "style backend: file, badger or sqlite")
	root.PersistentFlags().StringVar(&opts.data, "data", ".", "style data directory")
	root.PersistentFlags().StringVar(&opts.codec, "codec", defaults.Codec, "style encoding: sld or yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log store operations")

	root.AddCommand(
		newHasCmd(opts),
		newGetCmd(opts),
		newPutCmd(opts),
		newRmCmd(opts),
		newLsCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

// Execute runs the root command with process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) logger() logr.Logger {
	if !o.verbose {
		return logr.Discard()
	}
	logger, err := stylestore.NewLogger("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return logr.Discard()
	}
	return logger
}

// open opens the local store. Callers must Close the result.
func (o *options) open() (*server.StorageComponents, error) {
	cfg := &server.Config{
		Backend:  o.backend,
		DataPath: o.data,
		Codec:    o.codec,
	}
	return server.NewStorageComponents(cfg, o.logger())
}
