package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"recmap/internal/mapper"
	"recmap/internal/model"
)

func newLoadCmd(a *app) *cobra.Command {
	var fetch []string
	cmd := &cobra.Command{
		Use:   "load <entity> <id>",
		Short: "Load an entity through the mapper and print it as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := model.LoadSchemas(a.cfg.SchemaDir)
			if err != nil {
				return err
			}
			reg, err := model.NewRegistry(schemas)
			if err != nil {
				return err
			}
			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			e := mapper.New(a.st, reg, mapper.WithLogger(a.log), mapper.WithLocation(loc))

			d, ok := reg.ByName(args[0])
			if !ok {
				return fmt.Errorf("unknown entity %q", args[0])
			}
			tmpl, err := d.Template(args[1])
			if err != nil {
				return err
			}
			obj, found, err := e.Load(cmd.Context(), tmpl.Interface())
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s %q not found", d.Name, args[1])
			}
			for _, f := range fetch {
				if err := e.Fetch(cmd.Context(), obj, f); err != nil {
					return err
				}
			}

			out, err := json.MarshalIndent(obj, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, string(out))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&fetch, "fetch", nil, "Lazy fields to read as well")
	return cmd
}
