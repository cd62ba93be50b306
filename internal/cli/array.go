package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/soulhash/pkg/hasher"
)

// arrayCommand creates the array command.
func (c *CLI) arrayCommand() *cobra.Command {
	var (
		semantic bool
		absent   string
	)

	cmd := &cobra.Command{
		Use:   "array [ITEM...]",
		Short: "Hash a list of strings joined with commas",
		Long: `Hash a list of strings joined with commas in the order given.

Items equal to the --absent token are skipped, as if the value were missing.`,
		Example: `  soulhash array a - b          # same as hashing "a,b"
  soulhash array --semantic "import x" "export y"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]*string, len(args))
			for i := range args {
				if absent != "" && args[i] == absent {
					continue
				}
				items[i] = &args[i]
			}
			fmt.Fprintln(cmd.OutOrStdout(), hasher.HashArray(items, semantic))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&semantic, "semantic", "s", false, "compute the semantic hash instead of the textual one")
	cmd.Flags().StringVar(&absent, "absent", "-", "token marking a missing item (empty disables)")

	return cmd
}
