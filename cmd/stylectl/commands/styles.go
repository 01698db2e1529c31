package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garunski/stylestore/pkg/stylestore/seed"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

func newHasCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "has <type>",
		Short: "Report whether a style is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()

			ok, err := sc.Store.HasStyle(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "get <type>",
		Short: "Print a style",
		Long: `Print the style of a feature type.

Examples:
  stylectl get roads
  stylectl get roads --format yaml -o roads.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()

			codec := sc.Codec
			if format != "" {
				if codec, err = style.CodecByName(format); err != nil {
					return err
				}
			}

			st, err := sc.Store.GetStyle(args[0])
			if err != nil {
				return err
			}
			data, err := codec.Encode(st)
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output encoding (default: --codec)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newPutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "put <type> <file>",
		Short: "Store a style from a file",
		Long: `Store a style from a file, replacing any existing style.

The file is decoded according to its extension (.sld, .xml, .yaml, .yml),
falling back to --codec.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[1], err)
			}

			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()

			codec := sc.Codec
			if ext := strings.TrimPrefix(filepath.Ext(args[1]), "."); ext != "" {
				if byExt, err := style.CodecByName(ext); err == nil {
					codec = byExt
				}
			}

			st, err := codec.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			return sc.Store.StoreStyle(args[0], st)
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <type>",
		Aliases: []string{"remove"},
		Short:   "Remove a style",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()
			return sc.Store.RemoveStyle(args[0])
		},
	}
}

func newLsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List styled feature types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()

			names, err := sc.Store.ListStyles()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dir>",
		Short: "Store default styles without overwriting existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.open()
			if err != nil {
				return err
			}
			defer sc.Close()

			styles, err := seed.Load(os.DirFS(args[0]), ".", sc.Codec)
			if err != nil {
				return err
			}
			stored, err := seed.Apply(sc.Store, styles, opts.logger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d styles\n", len(stored), len(styles))
			return nil
		},
	}
}
