package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/gcfg.v1"

	"github.com/cadtools/massbudget/design"
	"github.com/cadtools/massbudget/geom"
	"github.com/cadtools/massbudget/io"
)

var logger = zap.NewNop()

// newLogger builds the production logger, with an extra file sink if
// logFile is set.
func newLogger(verbose bool, logFile string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		config.OutputPaths = append(config.OutputPaths, logFile)
	}
	return config.Build()
}

type budgetFlags struct {
	config, design, format string
	output, xlsx, plot     string
	volumes                string
	strict, parts          bool
	resolution             int
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var logFile string

	root := &cobra.Command{
		Use:   "massbudget",
		Short: "Mass budget of parametric spacecraft assemblies",
		Long: `massbudget builds a parametric spacecraft assembly, assigns every part a
material, density, solid fraction and tolerance, and reports the geometric
mass of each part, the assembly total and the wet mass of parts that carry
extra loads such as propellant.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose, logFile)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Log every part at debug level.",
	)
	root.PersistentFlags().StringVar(
		&logFile, "log-file", "", "Also write the log to this file.",
	)

	root.AddCommand(newBudgetCmd(), newExampleConfigCmd(), newDesignsCmd())
	return root
}

func newBudgetCmd() *cobra.Command {
	f := &budgetFlags{}
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Compute the mass budget of a design",
		Long: `Computes the mass budget of a design. Settings are read from the
configuration file given with --config, if any, and then overridden by flags.
Run "massbudget example-config" for a documented configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap := io.DefaultBudgetWrapper()
			if f.config != "" {
				if err := gcfg.ReadFileInto(wrap, f.config); err != nil {
					return err
				}
			}
			f.apply(cmd, wrap)
			if err := wrap.CheckInit(); err != nil {
				return err
			}

			if lf := wrap.Budget.LogFile; lf != "" &&
				!cmd.Flags().Changed("log-file") {
				verbose, _ := cmd.Flags().GetBool("verbose")
				l, err := newLogger(verbose, lf)
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				_ = logger.Sync()
				logger = l
			}

			_, err := runBudget(wrap, f.parts, cmd.OutOrStdout(), logger)
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "Configuration file.")
	fl.StringVar(&f.design, "design", "", "Design to account for.")
	fl.BoolVar(&f.strict, "strict", false,
		"Fail on unresolved materials instead of using the default density.")
	fl.StringVar(&f.format, "format", "", "Report format: text or yaml.")
	fl.BoolVar(&f.parts, "parts", false, "Add a per-part table to text reports.")
	fl.StringVarP(&f.output, "output", "o", "", "Write the report to this file.")
	fl.StringVar(&f.xlsx, "xlsx", "", "Write a spreadsheet to this file.")
	fl.StringVar(&f.plot, "plot", "", "Save a cumulative mass plot to this file.")
	fl.StringVar(&f.volumes, "volumes", "", "Table of part volumes to use.")
	fl.IntVar(&f.resolution, "resolution", geom.DefaultResolution,
		"Sample cells per axis for overlapping booleans.")
	return cmd
}

// apply copies every flag the user set onto the config.
func (f *budgetFlags) apply(cmd *cobra.Command, wrap *io.BudgetWrapper) {
	con := &wrap.Budget
	set := cmd.Flags().Changed
	if set("design") {
		con.Design = f.design
	} else if con.Design == "" {
		con.Design = "fusion"
	}
	if set("strict") {
		con.StrictMaterials = f.strict
	}
	if set("format") {
		con.Format = f.format
	}
	if set("output") {
		con.Output = f.output
	}
	if set("xlsx") {
		con.Spreadsheet = f.xlsx
	}
	if set("plot") {
		con.PlotFile = f.plot
	}
	if set("volumes") {
		con.VolumesFile = f.volumes
	}
	if set("resolution") {
		con.Resolution = f.resolution
	}
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [design]",
		Short: "Print a documented configuration file for a design",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "fusion"
			if len(args) == 1 {
				name = args[0]
			}
			d, err := design.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), io.ExampleConfig(d))
			return nil
		},
	}
}

func newDesignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "designs",
		Short: "List the recognized designs and their parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range design.Names() {
				d, _ := design.Lookup(name)
				es, err := d.Build(d.Defaults(), geom.Kernel{Resolution: 16})
				if err != nil {
					return err
				}
				parts := make([]string, len(es))
				for i := range es {
					parts[i] = es[i].Name
				}
				fmt.Fprintf(out, "%s: %s\n    parts: %s\n",
					name, d.Description(), strings.Join(parts, ", "),
				)
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
