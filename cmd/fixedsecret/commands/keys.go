package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/fixedsecret/internal/config"
)

func NewKeysCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys defined in the manifest",
		Long: `List every key in the manifest with its size, encoding and source.

No key material is read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			return writeKeyTable(cmd.OutOrStdout(), cfg, cfg.KeyNames())
		},
	}
}

func writeKeyTable(out io.Writer, cfg *config.Config, names []string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tENCODING\tSOURCE")
	for _, name := range names {
		key, err := cfg.GetKey(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, key.Size, key.Encoding, key.From.Describe())
	}
	return w.Flush()
}
