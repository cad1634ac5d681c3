package command

import (
	"fmt"
	"text/tabwriter"

	"examplar-api/internal/rbac"
	"examplar-api/internal/rbac/presets"

	"github.com/urfave/cli/v2"
)

// Policies prints the route access table
func Policies(c *cli.Context) error {
	checker := rbac.MustNew(presets.Catalog())

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tPOLICY")
	for _, r := range checker.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Policy)
	}
	fmt.Fprintf(w, "*\t*\t%s\n", presets.Catalog().DefaultPolicy)

	return w.Flush()
}
