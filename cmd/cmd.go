// Package cmd implements the biohazrd command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Watch-Later/Biohazrd/config"
	"github.com/Watch-Later/Biohazrd/interchange"
	"github.com/Watch-Later/Biohazrd/library"
	"github.com/Watch-Later/Biohazrd/session"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the biohazrd CLI with the given version string.
// Import transform packages via blank imports before calling this
// function so their passes register via init().
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "biohazrd",
		Usage:                  "Translate native declarations into an ABI-aware trampoline graph",
		Version:                version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "Translate a declaration interchange file and write the trampoline report",
				ArgsUsage: "<decls.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML configuration file",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory (overrides config)",
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: translateAction,
			},
			{
				Name:   "passes",
				Usage:  "List registered transformation passes",
				Action: passesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func translateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: biohazrd translate <decls.json>")
	}

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	if out := cmd.String("out"); out != "" {
		cfg.OutputDir = out
	}

	units, err := interchange.LoadFile(cmd.Args().First())
	if err != nil {
		return err
	}

	lib, declErrs := library.Translate(units)
	for _, derr := range declErrs {
		warnf(cmd.Bool("no-color"), "skipped: %v", derr)
	}

	var passes []library.Transform
	for _, name := range cfg.Passes {
		pass, ok := library.LookupPass(name)
		if !ok {
			return fmt.Errorf("unknown pass %q (see `biohazrd passes`)", name)
		}
		passes = append(passes, pass)
	}
	lib, err = library.Chain(passes...).Apply(lib)
	if err != nil {
		return err
	}

	policy, err := cfg.ConflictPolicy()
	if err != nil {
		return err
	}
	sess, err := session.New(session.Options{Root: cfg.OutputDir, OnConflict: policy})
	if err != nil {
		return err
	}
	if err := writeReport(sess, lib); err != nil {
		return err
	}
	if err := sess.Finish(); err != nil {
		return err
	}

	fmt.Printf("translated %d function(s), %d skipped, report in %s\n",
		len(lib.Functions()), len(declErrs), cfg.OutputDir)
	return nil
}

func passesAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range library.PassNames() {
		fmt.Println(name)
	}
	return nil
}

// warnf prints a warning to stderr, in yellow when stderr is an
// interactive terminal and color is not disabled.
func warnf(noColor bool, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd())) {
		msg = "\x1b[33m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}
