package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecs-shapegen/internal/app"
)

func newBuildCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile schemas and write the configured outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.load(cmd)
			if err != nil {
				return err
			}

			res, err := app.New(cfg, app.WithLogger(logger)).Build(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range res.Written {
				fmt.Fprintf(o.stdout, "wrote %s\n", p)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.String("smithy-out", "", "write the Smithy JSON AST to this file")
	f.String("yaml-out", "", "write the YAML rendering to this file")
	f.String("openapi-out", "", "write OpenAPI component schemas to this file")
	f.String("openapi-title", "Record schema", "title of the OpenAPI document")
	f.String("openapi-version", "1.0.0", "version of the OpenAPI document")
	f.String("go-out", "", "write Go type declarations to this file")
	f.String("go-package", "ecs", "package name of generated Go code")
	f.String("metrics-file", "", "write run statistics as a Prometheus textfile")

	return cmd
}
