// Command ecbb exposes the byte buffer and curve operations on the command
// line.  Operands and results are hex; structured results are YAML.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/smallyu/go-tpm-ec/internal/config"
	"github.com/smallyu/go-tpm-ec/internal/logging"
	"github.com/smallyu/go-tpm-ec/pkg/ec"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errUsage            = errors.New("usage")
	errInvalidSignature = errors.New("signature is not valid")
)

// env is the state shared by every subcommand.
type env struct {
	cfg   *config.Config
	group *ec.Group
	out   io.Writer
	log   zerolog.Logger
}

// command describes a subcommand.  setup registers its flags and returns
// the function run after parsing.
type command struct {
	name    string
	args    string
	summary string
	setup   func(fs *pflag.FlagSet) func(e *env, args []string) error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stderr)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		fmt.Fprintf(stderr, "ecbb: unknown command %q\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	fs := pflag.NewFlagSet("ecbb "+cmd.name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: ecbb %s [flags] %s\n", cmd.name, cmd.args)
		fs.PrintDefaults()
	}
	configFile := fs.String("config", "", "config file (default ./"+config.DefaultFile+")")

	loader := config.NewLoader(config.DefaultFile, defaultConfigPaths()...)
	if err := loader.RegisterFlags(fs); err != nil {
		fmt.Fprintf(stderr, "ecbb: %v\n", err)
		return exitFailure
	}
	exec := cmd.setup(fs)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *configFile != "" {
		loader.SetFile(*configFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "ecbb: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(stderr, cfg.Log.Level, logging.Format(cfg.Log.Format))
	if err != nil {
		fmt.Fprintf(stderr, "ecbb: %v\n", err)
		return exitFailure
	}
	ec.SetLogger(logger)
	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("config loaded")
	}

	group, err := ec.NewGroup(cfg.Curve)
	if err != nil {
		fmt.Fprintf(stderr, "ecbb: %v\n", err)
		return exitFailure
	}

	e := &env{cfg: cfg, group: group, out: stdout, log: logger}
	switch err := exec(e, fs.Args()); {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalidSignature):
		return exitFailure
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "ecbb %s: %v\n", cmd.name, err)
		fs.Usage()
		return exitUsage
	default:
		fmt.Fprintf(stderr, "ecbb %s: %v\n", cmd.name, err)
		return exitFailure
	}
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ecbb"))
	}
	return paths
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: ecbb <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `run "ecbb <command> --help" for the flags of a command`)
}
