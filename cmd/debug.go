package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cottand/regionck/frontend/ir"
	"github.com/cottand/regionck/frontend/regions"
	"github.com/cottand/regionck/internal/log"
)

var DebugCmd = &cobra.Command{
	Use:          "debug fixture.yaml",
	Short:        "Dump the member-constraint chains described by a YAML fixture",
	RunE:         runDebug,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = DebugCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

// fixture describes a collected inference state: a region universe, member
// constraints, and outlives edges.
type fixture struct {
	Regions     int `yaml:"regions"`
	Constraints []struct {
		Opaque        string   `yaml:"opaque"`
		HiddenType    string   `yaml:"hiddenType"`
		MemberRegion  uint32   `yaml:"memberRegion"`
		ChoiceRegions []uint32 `yaml:"choiceRegions"`
	} `yaml:"constraints"`
	Outlives []struct {
		Sup uint32 `yaml:"sup"`
		Sub uint32 `yaml:"sub"`
	} `yaml:"outlives"`
}

func runDebug(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "could not read fixture")
	}
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.Wrap(err, "could not decode fixture")
	}

	collector := regions.NewCollector(f.Regions)
	for _, c := range f.Constraints {
		choices := make([]regions.RegionVid, len(c.ChoiceRegions))
		for i, r := range c.ChoiceRegions {
			choices[i] = regions.RegionVid(r)
		}
		collector.MemberConstraint(
			regions.OpaqueTypeKey{Def: c.Opaque},
			ir.TypeRef{Name: c.HiddenType},
			ir.Range{},
			regions.RegionVid(c.MemberRegion),
			choices,
		)
	}
	for _, o := range f.Outlives {
		collector.Outlives(regions.RegionVid(o.Sup), regions.RegionVid(o.Sub))
	}

	mapped, sccs := collector.Finish()
	out := cmd.OutOrStdout()
	for scc := regions.SCCIndex(0); int(scc) < sccs.Len(); scc++ {
		header := false
		for idx := range mapped.Indices(scc) {
			if !header {
				_, _ = fmt.Fprintf(out, "%v:\n", scc)
				header = true
			}
			c := mapped.Constraint(idx)
			choices := make([]string, 0, len(mapped.ChoiceRegions(idx)))
			for _, r := range mapped.ChoiceRegions(idx) {
				choices = append(choices, r.String())
			}
			_, _ = fmt.Fprintf(out, "  [%d] %v member of [%s] (%v, hidden %v)\n",
				idx, c.MemberRegion, strings.Join(choices, ", "), c.Key, c.HiddenType)
		}
	}
	return nil
}
