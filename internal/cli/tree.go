package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libsgen/pkg/deps"
	"github.com/matzehuels/libsgen/pkg/filter"
)

// treeRow is one dependency with the verdicts of both filters. A dependency
// removed by the pattern filter never reaches the scope filter.
type treeRow struct {
	dep     deps.Dependency
	pattern filter.Decision
	scope   filter.Decision
	scoped  bool // scope filter consulted
}

func (r treeRow) included() bool { return r.pattern.Included() && r.scoped && r.scope.Included() }

// treeCommand creates the tree command for inspecting filter decisions.
func (c *CLI) treeCommand() *cobra.Command {
	var onlyIncluded bool

	cmd := &cobra.Command{
		Use:   "tree [pom.xml | groupId:artifactId[:version]]",
		Short: "Show discovered dependencies and their filter verdicts",
		Long: `Walk the dependency tree and print every unique dependency in discovery
order together with the decision of the dependency pattern filter and of the
scope filter. Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			_, stop := startResolveSpinner(ctx, "Loading "+cfg.POM+"...")
			s, err := newSession(ctx)
			if err != nil {
				stop()
				return err
			}
			list, err := s.walker().WalkTree(ctx, s.root)
			stop()
			if err != nil {
				return err
			}

			rows := decide(s.filters, list)
			included := 0
			for _, r := range rows {
				if r.included() {
					included++
				}
			}

			fmt.Fprintln(stdout, StyleTitle.Render(s.root.Coordinate()))
			fmt.Fprintln(stdout, renderTree(rows, cfg.Separator, onlyIncluded))
			printDetail("%d discovered · %d included", len(rows), included)
			return nil
		},
	}

	addResolveFlags(cmd)
	cmd.Flags().BoolVar(&onlyIncluded, "included", false, "only list dependencies that would be written")

	return cmd
}

// decide runs the filter chain over list the way the generator does, keeping
// each verdict.
func decide(chain *filter.Chain, list []deps.Dependency) []treeRow {
	rows := make([]treeRow, len(list))
	for i, d := range list {
		r := treeRow{dep: d, pattern: chain.PatternFilter().Decide(d)}
		if r.pattern.Included() {
			r.scope = chain.ScopeFilter().Decide(d)
			r.scoped = true
		}
		rows[i] = r
	}
	return rows
}

// renderTree renders rows as a table.
func renderTree(rows []treeRow, sep string, onlyIncluded bool) string {
	var data [][]string
	var shown []treeRow
	for i, r := range rows {
		if onlyIncluded && !r.included() {
			continue
		}
		scope := "—"
		if r.scoped {
			scope = r.scope.String()
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.dep.Coordinate(sep),
			orDash(r.dep.Scope),
			r.pattern.String(),
			scope,
		})
		shown = append(shown, r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Dependency", "Scope", "Pattern", "Scope filter").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if row < 0 || row >= len(shown) {
				return styleTableCell
			}
			if col == 0 {
				return styleTableCell.Foreground(colorDim)
			}
			if shown[row].included() {
				return styleTableCell.Foreground(colorGreen)
			}
			return styleTableCell.Foreground(colorDim)
		})

	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
