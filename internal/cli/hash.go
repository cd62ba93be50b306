package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/fingerprint"
	"github.com/matzehuels/soulhash/pkg/hasher"
)

// hashOutput is the JSON form of one hash result.
type hashOutput struct {
	Path   string `json:"path"`
	Hash   string `json:"hash,omitempty"`
	Soul   string `json:"soul,omitempty"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

// hashCommand creates the hash command.
func (c *CLI) hashCommand() *cobra.Command {
	var (
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "hash [FILE...]",
		Short: "Fingerprint files or stdin",
		Long: `Fingerprint files, or stdin when no file is given.

Modes:
  text      byte-exact XXH3 digest (default)
  semantic  protein hash; files without a code extension fall back to text
  dual      "<semantic>:<textual>"
  auto      semantic if the content looks like code, text otherwise`,
		Example: `  soulhash hash src/*.ts
  soulhash hash --mode dual main.go
  echo "const f = () => 1;" | soulhash hash --mode auto`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.hashOptions(mode)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return c.hashStdin(cmd, opts)
			}
			return c.hashFiles(cmd, args, opts, asJSON)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "hash mode: text, semantic, dual or auto (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) hashStdin(cmd *cobra.Command, opts fingerprint.Options) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read stdin")
	}

	var h string
	if opts.Auto {
		h = hasher.AutoHash(content)
	} else {
		h = hasher.Hash(content, opts.Mode)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}

func (c *CLI) hashFiles(cmd *cobra.Command, paths []string, opts fingerprint.Options, asJSON bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, closeRunner := c.newRunner(ctx, nil)
	defer closeRunner()

	prog := newProgress(logger)
	results, err := runner.HashFiles(ctx, paths, opts)
	if err != nil {
		return err
	}

	failed, cached := 0, 0
	out := make([]hashOutput, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Error("could not hash file", "path", res.Path, "err", errs.UserMessage(res.Err))
			out = append(out, hashOutput{Path: res.Path, Error: errs.UserMessage(res.Err)})
			continue
		}
		if res.Cached {
			cached++
		}
		out = append(out, hashOutput{Path: res.Path, Hash: res.Hash, Soul: res.Soul, Cached: res.Cached})
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
			if o.Error == "" {
				fmt.Fprintf(w, "%s  %s\n", o.Hash, o.Path)
			}
		}
	}

	prog.done("hashed files", "count", len(results)-failed, "cached", cached)

	if failed > 0 {
		return errs.New(errs.ErrCodeFileNotFound, "%d of %d files could not be hashed", failed, len(results))
	}
	return nil
}
