// Package cli turns process arguments into an Invocation. Argument
// validation, help and version output follow kingpin's conventions.
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pawlakmarek/comic-manager/internal/catalog"
)

const (
	// AppName is the binary name shown in usage output.
	AppName = "comic-manager"
	author  = "PawlakMarek <26022173+PawlakMarek@users.noreply.github.com>"
)

// LogLevels are the values accepted by --log-level.
var LogLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// Version is reported by --version. Overridable at build time with -ldflags.
var Version = "0.1.0"

// Command identifies the subcommand selected on the command line.
type Command uint8

const (
	// CommandNone means no subcommand was given.
	CommandNone Command = iota
	// CommandList lists one kind of entity.
	CommandList
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandList:
		return "list"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// Invocation is the parsed command line.
type Invocation struct {
	Command    Command
	Entity     catalog.Entity
	ConfigFile string
	EnvFile    string
	LogLevel   string
}

// UsageError wraps a command-line parsing failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Option configures Parse.
type Option func(*parser)

// WithOutput sets the writer for usage, version and error output.
func WithOutput(w io.Writer) Option {
	return func(p *parser) {
		p.out = w
	}
}

// WithTerminate overrides the exit function kingpin calls after --help or
// --version (primarily for tests).
func WithTerminate(terminate func(int)) Option {
	return func(p *parser) {
		p.terminate = terminate
	}
}

type parser struct {
	out       io.Writer
	terminate func(int)
}

// Parse interprets args (without the program name).
func Parse(args []string, opts ...Option) (Invocation, error) {
	p := parser{
		out:       os.Stderr,
		terminate: os.Exit,
	}
	for _, opt := range opts {
		opt(&p)
	}

	var inv Invocation
	app := kingpin.New(AppName, "Manages your comic book collection").
		Version(Version).
		Author(author).
		UsageWriter(p.out).
		ErrorWriter(p.out).
		Terminate(p.terminate)

	flagTargets := map[*kingpin.FlagClause]flagTarget{}
	stringFlag := func(name, help string, target *string, options ...string) {
		flag := app.Flag(name, help)
		if len(options) > 0 {
			flag.EnumVar(target, options...)
		} else {
			flag.StringVar(target)
		}
		flagTargets[flag] = flagTarget{value: target, options: options}
	}
	stringFlag("config", "Path to YAML configuration file (default config/default[.yaml|.yml])", &inv.ConfigFile)
	stringFlag("env-file", "Path to a .env file consulted for variables missing from the environment (default .env, optional)", &inv.EnvFile)
	stringFlag("log-level", "Log level: "+strings.Join(LogLevels, ", "), &inv.LogLevel, LogLevels...)

	list := app.Command("list", "List entities")
	list.Arg("entity", "The type of entity to list: "+strings.Join(catalog.Names(), ", ")).
		Required().
		HintOptions(catalog.Names()...).
		SetValue(&inv.Entity)

	// kingpin dumps usage when no command is given; a bare invocation only
	// gets a hint, so that case is resolved from the parse context.
	if pc, err := app.ParseContext(args); err == nil && pc.SelectedCommand == nil {
		if applyOwnFlags(pc, flagTargets) {
			inv.Command = CommandNone
			return inv, nil
		}
	}

	command, err := app.Parse(args)
	if err != nil {
		app.Errorf("%s, try --help", err)
		return Invocation{}, &UsageError{Err: err}
	}

	switch command {
	case list.FullCommand():
		inv.Command = CommandList
	default:
		return Invocation{}, &UsageError{Err: fmt.Errorf("unsupported command %q", command)}
	}

	return inv, nil
}

type flagTarget struct {
	value   *string
	options []string
}

// applyOwnFlags copies flag values from pc into their targets. It reports
// false if pc holds anything else, such as kingpin's builtin help flags, a
// repeated flag or a value outside a flag's options, leaving those to the
// full parse.
func applyOwnFlags(pc *kingpin.ParseContext, targets map[*kingpin.FlagClause]flagTarget) bool {
	seen := make(map[*kingpin.FlagClause]struct{}, len(pc.Elements))
	for _, el := range pc.Elements {
		flag, ok := el.Clause.(*kingpin.FlagClause)
		if !ok {
			return false
		}
		target, ok := targets[flag]
		if !ok || el.Value == nil {
			return false
		}
		if _, dup := seen[flag]; dup {
			return false
		}
		if len(target.options) > 0 && !slices.Contains(target.options, *el.Value) {
			return false
		}
		seen[flag] = struct{}{}
		*target.value = *el.Value
	}
	return true
}
