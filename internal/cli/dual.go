package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/hasher"
)

type dualOutput struct {
	Path string `json:"path"`
	hasher.DualHash
}

// dualCommand creates the dual command. Each file is read once and both
// identities are computed from that buffer; the cache is not consulted.
func (c *CLI) dualCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dual FILE...",
		Short: "Print the semantic and textual identity of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var out []dualOutput
			failed := 0
			for _, path := range args {
				if err := errs.ValidateFilePath(path); err != nil {
					return err
				}
				d, ok := hasher.DualHashFile(path)
				if !ok {
					failed++
					logger.Error("could not read file", "path", path)
					continue
				}
				out = append(out, dualOutput{Path: path, DualHash: d})
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else {
				for _, o := range out {
					fmt.Fprintf(w, "%s  %s\n", o.DualHash, o.Path)
				}
			}

			if failed > 0 {
				return errs.New(errs.ErrCodeFileNotFound, "%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON with separate semantic and textual fields")

	return cmd
}
