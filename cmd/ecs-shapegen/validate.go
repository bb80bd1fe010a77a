package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecs-shapegen/internal/app"
)

func newValidateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Compile schemas and check the model without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.load(cmd)
			if err != nil {
				return err
			}

			res, err := app.New(cfg, app.WithLogger(logger)).Compile(cmd.Context())
			if err != nil {
				return err
			}

			m := res.Model
			for _, d := range m.Diagnostics.All() {
				fmt.Fprintf(o.stdout, "%s: %s\n", d.Severity, d)
			}

			fmt.Fprintf(o.stdout, "ok: %d documents, %d shapes, %d reuse grafts\n",
				m.Documents, m.Index.Len(), m.Grafts)

			return nil
		},
	}
}
