// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli binds a schema to a [cobra.Command].
//
// The command hands its arguments to the options-string parser instead
// of cobra's flag handling. Config sources are applied first and the
// arguments second, so only the fields mentioned on the command line
// override configured values.
package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/z5labs/optschema"
	"github.com/z5labs/optschema/config"
	"github.com/z5labs/optschema/internal/try"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Runner is the entry point for user code. It receives the fully
// resolved options.
type Runner interface {
	Run(context.Context, *optschema.Instance) error
}

// RunnerFunc is a functional implementation of the [Runner] interface.
type RunnerFunc func(context.Context, *optschema.Instance) error

// Run implements the [Runner] interface.
func (f RunnerFunc) Run(ctx context.Context, inst *optschema.Instance) error {
	return f(ctx, inst)
}

// Option configures the command returned by [Command].
type Option func(*commandOptions)

type commandOptions struct {
	use        string
	short      string
	log        *zap.Logger
	srcs       []config.Source
	configFlag string
	configFS   fs.FS
}

// Use sets the one-line usage message. It defaults to the schema name.
func Use(use string) Option {
	return func(co *commandOptions) {
		co.use = use
	}
}

// Short sets the short description shown in help output.
func Short(short string) Option {
	return func(co *commandOptions) {
		co.short = short
	}
}

// Logger sets the logger used by the command and its parser.
func Logger(logger *zap.Logger) Option {
	return func(co *commandOptions) {
		co.log = logger
	}
}

// ConfigSource registers config sources applied before the arguments.
// Subsequent sources override previous sources.
func ConfigSource(srcs ...config.Source) Option {
	return func(co *commandOptions) {
		co.srcs = append(co.srcs, srcs...)
	}
}

// ConfigFlag enables a flag, e.g. "--config", naming a config file in fsys.
// The flag may be repeated and its files are applied after the sources
// registered with [ConfigSource]. It takes precedence over a schema
// field spelled the same way.
func ConfigFlag(flag string, fsys fs.FS) Option {
	return func(co *commandOptions) {
		co.configFlag = flag
		co.configFS = fsys
	}
}

// ConfigReadError occurs when the config sources cannot be read.
type ConfigReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read config source(s): %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigReadError) Unwrap() error {
	return e.Cause
}

// ConfigApplyError occurs when the config values do not fit the schema.
type ConfigApplyError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigApplyError) Error() string {
	return fmt.Sprintf("failed to apply config to options: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigApplyError) Unwrap() error {
	return e.Cause
}

// ArgsParseError occurs when the command line arguments cannot be parsed.
type ArgsParseError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ArgsParseError) Error() string {
	return fmt.Sprintf("failed to parse arguments: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ArgsParseError) Unwrap() error {
	return e.Cause
}

// MissingFlagValueError occurs when the config flag is the last argument.
type MissingFlagValueError struct {
	Flag string
}

// Error implements the [builtin.error] interface.
func (e MissingFlagValueError) Error() string {
	return fmt.Sprintf("flag needs an argument: %s", e.Flag)
}

// RunError wraps a failure returned by the [Runner].
type RunError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RunError) Error() string {
	return fmt.Sprintf("failed to run: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RunError) Unwrap() error {
	return e.Cause
}

// Command returns a cobra command which resolves an instance of s from
// its config sources and arguments and passes it to r.
func Command(s *optschema.Schema, r Runner, opts ...Option) *cobra.Command {
	co := &commandOptions{
		use: s.Name(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(co)
	}

	return &cobra.Command{
		Use:                co.use,
		Short:              co.short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			if wantsHelp(s, args) {
				_, err = fmt.Fprint(cmd.OutOrStdout(), helpText(cmd, s))
				return err
			}

			inst, err := co.resolve(cmd.Context(), s, args)
			if err != nil {
				return err
			}

			err = r.Run(cmd.Context(), inst)
			if err != nil {
				return RunError{Cause: err}
			}
			return nil
		},
	}
}

func (co *commandOptions) resolve(ctx context.Context, s *optschema.Schema, args []string) (_ *optschema.Instance, err error) {
	_, span := otel.Tracer("cli").Start(ctx, "Command.resolve", trace.WithAttributes(
		attribute.String("optschema.schema", s.Name()),
		attribute.Int("optschema.args", len(args)),
	))
	defer span.End()
	defer func() {
		if err == nil {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		co.log.Error("failed to resolve options", zap.String("schema", s.Name()), zap.Error(err))
	}()

	args, files, err := co.extractConfigFiles(args)
	if err != nil {
		return nil, err
	}

	inst, err := optschema.New(s, nil)
	if err != nil {
		return nil, err
	}

	srcs := slices.Clone(co.srcs)
	for _, f := range files {
		srcs = append(srcs, config.FromFile(co.configFS, f))
	}
	if len(srcs) > 0 {
		m, err := config.Read(srcs...)
		if err != nil {
			return nil, ConfigReadError{Cause: err}
		}
		err = m.Apply(inst)
		if err != nil {
			return nil, ConfigApplyError{Cause: err}
		}
		co.log.Debug("applied config sources", zap.Int("sources", len(srcs)), zap.Strings("files", files))
	}

	p := optschema.NewParser(s, optschema.Logger(co.log))
	err = p.ParseArgsInto(inst, args)
	if err != nil {
		return nil, ArgsParseError{Cause: err}
	}

	options := inst.Minimal()
	span.SetAttributes(attribute.String("optschema.options", options))
	co.log.Debug("resolved options", zap.String("schema", s.Name()), zap.String("options", options))
	return inst, nil
}

// extractConfigFiles removes every occurrence of the config flag,
// in both "--config path" and "--config=path" form, from args.
func (co *commandOptions) extractConfigFiles(args []string) ([]string, []string, error) {
	if co.configFlag == "" {
		return args, nil, nil
	}

	var rest, files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if v, ok := strings.CutPrefix(arg, co.configFlag+"="); ok {
			files = append(files, v)
			continue
		}
		if arg != co.configFlag {
			rest = append(rest, arg)
			continue
		}
		if i+1 == len(args) {
			return nil, nil, MissingFlagValueError{Flag: co.configFlag}
		}
		files = append(files, args[i+1])
		i++
	}
	return rest, files, nil
}

// wantsHelp reports whether args ask for help using a token
// which the schema does not claim for itself.
func wantsHelp(s *optschema.Schema, args []string) bool {
	for _, f := range s.Fields() {
		if slices.Contains(f.Flags(), "-h") || slices.Contains(f.Flags(), "--help") {
			return false
		}
	}
	return slices.Contains(args, "-h") || slices.Contains(args, "--help")
}

func helpText(cmd *cobra.Command, s *optschema.Schema) string {
	var sb strings.Builder
	if cmd.Short != "" {
		sb.WriteString(cmd.Short)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Usage:\n  ")
	sb.WriteString(cmd.CommandPath())
	sb.WriteString(" [options]\n\nOptions:\n")
	sb.WriteString(s.Usage())
	return sb.String()
}

// Run executes cmd with args and cancels its context when the
// process receives an interrupt.
func Run(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(append([]string{}, args...))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return cmd.ExecuteContext(ctx)
}
