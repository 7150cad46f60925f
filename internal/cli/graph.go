package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/render/nodelink"
)

// graphCommand creates the graph command for rendering the discovery graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [pom.xml | groupId:artifactId[:version]]",
		Short: "Render the dependency discovery graph",
		Long: `Walk the dependency tree and render which project declared which
dependency. Dependencies rejected by the filters are drawn dashed; edges to a
dependency that was already discovered elsewhere are dotted.

The format is taken from --format, else from the extension of --output.
Without --output, DOT is written to stdout.`,
		Example: `  libsgen graph -o deps.svg
  libsgen graph --format png -o deps.png com.google.guava:guava:33.0.0-jre
  libsgen graph | dot -Tpdf > deps.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := graphFormat(format, output)
			if err != nil {
				return err
			}
			if _, err := c.loadConfig(cmd, args); err != nil {
				return err
			}
			ctx := cmd.Context()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			g := nodelink.NewGraph(s.root.Coordinate())
			list, err := s.walker(deps.WithVisitor(g.Visit)).WalkTree(ctx, s.root)
			if err != nil {
				return err
			}
			for _, r := range decide(s.filters, list) {
				if !r.included() {
					g.MarkExcluded(r.dep.Key().String())
				}
			}

			prog := newProgress(s.logger)
			data, err := nodelink.Render(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: detailed}), f)
			if err != nil {
				return errs.Wrap(errs.ErrCodeInternal, err, "render graph")
			}
			prog.done("Rendered %d nodes as %s", len(g.Nodes()), f)

			if output == "" {
				_, err = stdout.Write(data)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Graph of %s", StyleHighlight.Render(s.root.Coordinate()))
			printFile(output)
			return nil
		},
	}

	addResolveFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: DOT on stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png (default: from --output extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show scopes in node labels")

	return cmd
}

// graphFormat picks the render format from the flag, else from the output
// file extension, else DOT.
func graphFormat(flag, output string) (nodelink.Format, error) {
	if flag == "" {
		if output == "" || filepath.Ext(output) == "" {
			return nodelink.FormatDOT, nil
		}
		flag = filepath.Ext(output)
	}
	f, err := nodelink.ParseFormat(flag)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeUnsupported, err, "graph format")
	}
	return f, nil
}
