package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/bvbench/configspace"
	"github.com/sarchlab/bvbench/emitter"
	"github.com/sarchlab/bvbench/protocol"
)

// options holds flag values shared by the commands of one command tree.
type options struct {
	bindingsPath string

	variant string
	format  string

	size  uint64
	steps uint64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "bvgen <id> <output>",
		Short: "Generate benchmark programs for dynamic bit vectors",
		Long: `bvgen writes a self-contained Go program that benchmarks one bit-vector
configuration. Configurations are numbered; see "bvgen list".`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts <id> <output>, received %d arg(s)", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(cmd, opts, args[0], args[1])
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.bindingsPath, "bindings", "",
		"YAML file with the import paths of the bit-vector packages")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
	listCmd.Flags().StringVar(&opts.variant, "variant", "", "Only list this variant (dyn, leaf, generic)")
	listCmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table, json or yaml")

	planCmd := &cobra.Command{
		Use:   "plan [<seed> [total_size] [steps]]",
		Short: "Print the growth schedule of a benchmark run",
		Long: `plan prints the target sizes of each measured step. Positional arguments
are read exactly like the command line of a generated program and override
--size and --steps.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args)
		},
	}
	planCmd.Flags().Uint64Var(&opts.size, "size", protocol.DefaultTotalSize, "Final number of bits")
	planCmd.Flags().Uint64Var(&opts.steps, "steps", protocol.DefaultSteps, "Number of measured steps")

	allCmd := &cobra.Command{
		Use:   "all <dir>",
		Short: "Generate every configuration into <dir>/<id>/main.go",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, opts, args[0])
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <results.tsv>",
		Short: "Validate the output of a generated program (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-bindings <path>",
		Short: "Write the default bindings to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := emitter.DefaultBindings().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote default bindings to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(listCmd, planCmd, allCmd, checkCmd, initCmd)
	return rootCmd
}

func newEmitter(opts *options) (*emitter.Emitter, error) {
	if opts.bindingsPath == "" {
		return emitter.New(nil)
	}
	b, err := emitter.LoadBindings(opts.bindingsPath)
	if err != nil {
		return nil, err
	}
	return emitter.New(b)
}

func runGenerate(cmd *cobra.Command, opts *options, idArg, outPath string) error {
	last := configspace.Len() - 1

	id, err := strconv.Atoi(idArg)
	if err != nil {
		return fmt.Errorf("invalid configuration id %q: %w", idArg, err)
	}

	rec, err := configspace.Resolve(id)
	if err != nil {
		return fmt.Errorf("Invalid type %d (should be in range [0..%d]): %w",
			id, last, configspace.ErrOutOfRange)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Generating code for test case %d (in range [0..%d]).\n", id, last)

	e, err := newEmitter(opts)
	if err != nil {
		return err
	}
	return e.EmitFile(rec, outPath)
}

func runList(cmd *cobra.Command, opts *options) error {
	records := configspace.All()
	if opts.variant != "" {
		v, err := configspace.ParseVariant(opts.variant)
		if err != nil {
			return err
		}
		records = configspace.Find(func(r configspace.Record) bool { return r.Variant == v })
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "table":
		_, _ = fmt.Fprintln(out, "id\tvariant\tsimd\tbranch_factor\tleaf_size\tbuffer_size")
		for _, r := range records {
			_, _ = fmt.Fprintln(out, r.String())
		}
		return nil
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		if err := encoder.Encode(records); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unknown format %q", opts.format)
}

func runPlan(cmd *cobra.Command, opts *options, args []string) error {
	size, steps := opts.size, opts.steps
	if len(args) > 0 {
		params, err := protocol.ParseArgs(append([]string{"program"}, args...))
		if err != nil {
			return err
		}
		size, steps = params.TotalSize, params.Steps
	}

	checkpoints, err := protocol.Schedule(size, steps)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "startexp: %g. delta: %g\n",
		protocol.StartExp(), protocol.Delta(size, steps))

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "step\ttarget_size")
	for _, cp := range checkpoints {
		_, _ = fmt.Fprintf(out, "%d\t%d\n", cp.Step, cp.Target)
	}
	return nil
}

func runAll(cmd *cobra.Command, opts *options, dir string) error {
	e, err := newEmitter(opts)
	if err != nil {
		return err
	}

	paths, err := e.EmitAll(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d programs in %s\n", len(paths), dir)
	return nil
}

// errBadResults is returned by check when the results do not follow the
// output format.
var errBadResults = errors.New("invalid benchmark results")

func runCheck(cmd *cobra.Command, path string) error {
	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open results: %w", err)
		}
		defer f.Close()
		in = f
	}

	rows, err := checkResults(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows ok\n", len(rows))
	return nil
}

// checkResults reads a generated program's standard output and returns its
// rows. The first line must be the header and target sizes must strictly
// increase.
func checkResults(in io.Reader) ([]protocol.Row, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing header", errBadResults)
	}
	if scanner.Text() != protocol.Header() {
		return nil, fmt.Errorf("%w: unexpected header %q", errBadResults, scanner.Text())
	}

	var rows []protocol.Row
	for line := 2; scanner.Scan(); line++ {
		row, err := protocol.ParseRow(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", errBadResults, line, err)
		}
		if n := len(rows); n > 0 && row.TargetSize <= rows[n-1].TargetSize {
			return nil, fmt.Errorf("%w: line %d: target_size %d does not increase",
				errBadResults, line, row.TargetSize)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
