// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command optschema normalizes, expands and documents options strings
// of the example schemas.
//
//	optschema normalize -t --method 'MethodA(abool)'   # --test True --method A2
//	optschema expand --W 5
//	optschema variants MethodA
//	optschema usage ExampleOptions
//	optschema jsonschema ExampleOptions
//
// Options are also read from OPTSCHEMA_ prefixed environment variables
// and from the files named by --config.
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/z5labs/optschema"
	"github.com/z5labs/optschema/cli"
	"github.com/z5labs/optschema/config"
	"github.com/z5labs/optschema/internal/example"
	"github.com/z5labs/optschema/jsonschema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const envPrefix = "OPTSCHEMA_"

// UnknownSchemaError occurs when a schema name is not registered.
type UnknownSchemaError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e UnknownSchemaError) Error() string {
	return fmt.Sprintf("unknown schema: %s", e.Name)
}

func newRootCmd(out io.Writer, log *zap.Logger, fsys fs.FS, env config.Source) *cobra.Command {
	root := &cobra.Command{
		Use:          "optschema",
		Short:        "Work with options strings of the example schemas.",
		SilenceUsage: true,
	}
	root.SetOut(out)

	printer := func(render func(*optschema.Instance) string) cli.Runner {
		return cli.RunnerFunc(func(ctx context.Context, inst *optschema.Instance) error {
			_, err := fmt.Fprintln(out, render(inst))
			return err
		})
	}
	commonOpts := []cli.Option{
		cli.Logger(log),
		cli.ConfigSource(env),
		cli.ConfigFlag("--config", fsys),
	}

	root.AddCommand(
		cli.Command(example.Options, printer((*optschema.Instance).Minimal), append([]cli.Option{
			cli.Use("normalize"),
			cli.Short("Print the minimal options string."),
		}, commonOpts...)...),
		cli.Command(example.Options, printer((*optschema.Instance).String), append([]cli.Option{
			cli.Use("expand"),
			cli.Short("Print the options string with every field."),
		}, commonOpts...)...),
		schemaCmd("variants", "Print the variants of a schema.", out, (*optschema.Schema).VariantsHelp),
		schemaCmd("usage", "Print the flags of a schema.", out, (*optschema.Schema).Usage),
		schemaCmd("jsonschema", "Print the JSON Schema of config documents for a schema.", out, func(s *optschema.Schema) string {
			b, err := jsonschema.Marshal(s)
			if err != nil {
				log.Error("failed to marshal json schema", zap.Error(err))
				return ""
			}
			return string(b)
		}),
	)
	return root
}

func schemaCmd(use, short string, out io.Writer, render func(*optschema.Schema) string) *cobra.Command {
	return &cobra.Command{
		Use:       use + " SCHEMA",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: schemaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := optschema.Lookup(args[0])
			if !ok {
				return UnknownSchemaError{Name: args[0]}
			}
			_, err := fmt.Fprintln(out, render(s))
			return err
		},
	}
}

func schemaNames() []string {
	var names []string
	for name := range example.Schemas() {
		names = append(names, name)
	}
	return names
}

func main() {
	os.Exit(run())
}

func run() int {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	cmd := newRootCmd(os.Stdout, log, os.DirFS("."), config.FromEnv(envPrefix))
	err = cli.Run(cmd, os.Args[1:]...)
	if err != nil {
		return 1
	}
	return 0
}
