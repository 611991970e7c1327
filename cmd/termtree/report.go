package main

import (
	"errors"
	"fmt"

	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/filters"
	"github.com/jackfish212/termtree/types"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var in inputFlags
	var q filters.QueryOpts
	var sum, avg, minProp, maxProp string
	var count, desc bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the tree as JSON, optionally filtered with jsonq",
		Long: `report flattens the rebuilt tree into a JSON document with the query
results, a "directories" collection and a "files" collection. Query flags
select from one collection:

  termtree report --where "size < 100000" --sum size
  termtree report --from files --sort-by size --desc --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _, err := a.loadTree(cmd, in)
			if err != nil {
				return err
			}
			res, err := termtree.Solve(root, a.cfg)
			if err != nil && !errors.Is(err, types.ErrNoCandidate) {
				return err
			}
			rep := filters.NewReport(root, res)

			agg, prop, err := aggregateFlag(sum, avg, minProp, maxProp, count)
			if err != nil {
				return err
			}
			q.Aggregate, q.Prop = agg, prop
			if desc {
				q.SortOrder = "desc"
			}

			out, err := filters.Query(rep, q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addInputFlags(cmd, &in)
	f := cmd.Flags()
	f.StringVar(&q.From, "from", "directories", "Collection to query: directories or files")
	f.StringArrayVarP(&q.Where, "where", "w", nil, `Filter condition "key op value" (repeatable, ANDed)`)
	f.StringVar(&q.SortBy, "sort-by", "", "Sort by property")
	f.BoolVar(&desc, "desc", false, "Sort descending")
	f.IntVar(&q.Limit, "limit", 0, "Limit the number of records")
	f.StringSliceVar(&q.Select, "select", nil, "Properties to keep")
	f.StringVar(&q.Pluck, "pluck", "", "Print only this property")
	f.StringVar(&sum, "sum", "", "Sum a property")
	f.StringVar(&avg, "avg", "", "Average a property")
	f.StringVar(&minProp, "min", "", "Minimum of a property")
	f.StringVar(&maxProp, "max", "", "Maximum of a property")
	f.BoolVar(&count, "count", false, "Count matching records")
	f.BoolVarP(&q.Raw, "raw", "r", false, "Print raw values instead of JSON")
	return cmd
}

// aggregateFlag resolves the mutually exclusive aggregate flags.
func aggregateFlag(sum, avg, minProp, maxProp string, count bool) (string, string, error) {
	var agg, prop string
	n := 0
	for _, c := range []struct{ name, prop string }{
		{"sum", sum}, {"avg", avg}, {"min", minProp}, {"max", maxProp},
	} {
		if c.prop != "" {
			agg, prop = c.name, c.prop
			n++
		}
	}
	if count {
		agg = "count"
		n++
	}
	if n > 1 {
		return "", "", fmt.Errorf("only one of --sum, --avg, --min, --max, --count may be given")
	}
	return agg, prop, nil
}
