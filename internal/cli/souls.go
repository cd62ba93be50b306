package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/fingerprint"
	"github.com/matzehuels/soulhash/pkg/hasher"
	"github.com/matzehuels/soulhash/pkg/soul"
)

// soulsCommand creates the souls command, which groups code files by their
// semantic hash.
func (c *CLI) soulsCommand() *cobra.Command {
	var (
		minSize int
		find    string
	)

	cmd := &cobra.Command{
		Use:   "souls FILE...",
		Short: "Group code files that share a semantic hash",
		Long: `Compute the semantic hash of every file and group files that share one.

Files without a code extension (js, ts, jsx, tsx, rs, go, java, py) have no
soul and are ignored. Use --find to list the files of a single soul.`,
		Example: `  soulhash souls src/**/*.ts
  soulhash souls --min 3 $(git ls-files '*.go')
  soulhash souls --find p0123456789abcdef src/*.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if minSize < 1 {
				return errs.New(errs.ErrCodeInvalidInput, "--min must be at least 1, got %d", minSize)
			}
			if find != "" && !hasher.IsSemantic(find) {
				return errs.New(errs.ErrCodeInvalidInput, "%q is not a semantic hash", find)
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			reg := soul.New()
			runner, closeRunner := c.newRunner(ctx, reg)
			defer closeRunner()

			opts, err := c.hashOptions(hasher.Semantic.String())
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Hashing %d files...", len(args)))
			spinner.Start()
			results, err := runner.HashFiles(ctx, args, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			hashed, cached, failed := tally(results)
			for _, res := range results {
				if res.Err != nil {
					logger.Error("could not hash file", "path", res.Path, "err", errs.UserMessage(res.Err))
				}
			}

			if find != "" {
				w := cmd.OutOrStdout()
				for _, path := range reg.FindBySoul(find) {
					fmt.Fprintln(w, path)
				}
				return nil
			}

			groups := reg.Groups(minSize)
			if len(groups) == 0 {
				printInfo("No souls with at least %d files", minSize)
			} else {
				fmt.Fprintln(uiOut, StyleTitle.Render(fmt.Sprintf("%d souls", len(groups))))
				for _, g := range groups {
					printSoul(g.Soul, len(g.Paths)-1)
					for _, p := range g.Paths {
						printFile(p)
					}
				}
			}
			printStats(hashed, cached, failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&minSize, "min", 2, "only show souls shared by at least this many files")
	cmd.Flags().StringVar(&find, "find", "", "print the files registered under this semantic hash")

	return cmd
}

// tally counts successful, cached and failed results.
func tally(results []fingerprint.Result) (hashed, cached, failed int) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Cached:
			hashed++
			cached++
		default:
			hashed++
		}
	}
	return hashed, cached, failed
}
