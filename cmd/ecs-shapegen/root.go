package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ecs-shapegen/internal/config"
)

// options carries state shared by every subcommand.
type options struct {
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "ecs-shapegen",
		Short: "Compile ECS field schemas into a shape model",
		Long: `ecs-shapegen reads schema documents that declare dotted field paths,
compiles them into a graph of structures, lists, maps and enums, grafts
reusable documents into the places they are expected, and renders the result.

Examples:
  ecs-shapegen validate --manifest schemas/subset.txt
  ecs-shapegen build --schema-dir schemas --smithy-out out/model.json --go-out out/model_gen.go
  ecs-shapegen inspect --manifest schemas/subset.txt --dump ecs#Process`,
		SilenceUsage: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("namespace", "ecs", "namespace of generated shapes")
	pf.String("root-name", "Record", "name of the aggregate root structure")
	pf.String("manifest", "", "file listing schema files, one per line")
	pf.String("schema-dir", "", "directory of *.yml schema files")
	pf.Bool("strict", true, "fail on identifier collisions instead of overwriting")
	pf.Bool("known-fields", false, "reject undeclared keys in schema files")
	pf.Bool("validate", true, "check schema files against the document schema")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newBuildCmd(o), newInspectCmd(o), newValidateCmd(o))

	return cmd
}

// load resolves the configuration for cmd and builds the logger it asks for.
func (o *options) load(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(o.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Check(); err != nil {
		return nil, nil, err
	}

	lvl, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(o.stderr, log.Options{
		Prefix: "ecs-shapegen",
		Level:  lvl,
	})

	return cfg, logger, nil
}
