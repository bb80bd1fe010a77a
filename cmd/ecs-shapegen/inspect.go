package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ecs-shapegen/internal/app"
	"ecs-shapegen/internal/compiler"
	"ecs-shapegen/internal/match"
	"ecs-shapegen/internal/shape"
)

var kinds = []shape.Kind{
	shape.KindStructure, shape.KindList, shape.KindMap, shape.KindEnum, shape.KindScalar,
}

func kindName(k shape.Kind) string {
	return strings.ToLower(k.String())
}

func parseKind(s string) (shape.Kind, error) {
	for _, k := range kinds {
		if kindName(k) == strings.ToLower(s) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown shape kind %q", s)
}

func newInspectCmd(o *options) *cobra.Command {
	var (
		kind string
		dump string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the compiled model",
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

			switch {
			case dump != "":
				return dumpShape(o.stdout, res.Model, dump)
			case kind != "":
				k, err := parseKind(kind)
				if err != nil {
					return err
				}

				listShapes(o.stdout, res.Model.Index, k)

				return nil
			default:
				summarize(o.stdout, res.Model)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "list the shapes of one kind (structure, list, map, enum)")
	cmd.Flags().StringVar(&dump, "dump", "", "print one shape in full, by namespace#Name or Name")

	return cmd
}

func summarize(w io.Writer, m *compiler.Model) {
	counts := m.Index.CountByKind()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KIND", "COUNT"})

	for _, k := range kinds {
		table.Append([]string{kindName(k), strconv.Itoa(counts[k])})
	}

	table.SetFooter([]string{"total", strconv.Itoa(m.Index.Len())})
	table.Render()

	fmt.Fprintf(w, "root %s: %d documents, %d reuse grafts, %d warnings\n",
		m.Root, m.Documents, m.Grafts, len(m.Diagnostics.Warnings))
}

func listShapes(w io.Writer, idx *shape.Index, k shape.Kind) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "TARGETS"})

	for _, s := range idx.Shapes() {
		if s.Kind() != k {
			continue
		}

		targets := make([]string, 0, len(s.Targets()))
		for _, t := range s.Targets() {
			targets = append(targets, t.String())
		}

		table.Append([]string{s.ID().String(), strings.Join(targets, ", ")})
	}

	table.Render()
}

func dumpShape(w io.Writer, m *compiler.Model, ref string) error {
	id, err := shape.ParseID(ref)
	if err != nil {
		id = shape.NewID(m.Root.Namespace, ref)
	}

	s, ok := m.Index.Get(id)
	if !ok {
		names := make([]string, 0, m.Index.Len())
		for _, known := range m.Index.IDs() {
			names = append(names, known.Name)
		}

		if hints := match.Suggest(id.Name, names, match.DefaultThreshold, 3); len(hints) > 0 {
			return fmt.Errorf("%w: %s (did you mean %s?)", shape.ErrNotFound, id, strings.Join(hints, ", "))
		}

		return fmt.Errorf("%w: %s", shape.ErrNotFound, id)
	}

	spew.Fdump(w, s)

	return nil
}
