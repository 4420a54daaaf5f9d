package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recmap/internal/seed"
	"recmap/internal/store"
)

var errFieldNotSet = errors.New("field not set")

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <key>",
		Short: "Report whether a record exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.st.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ok)
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> <field>",
		Short: "Print one field of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok, err := a.st.GetField(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s.%s: %w", args[0], args[1], errFieldNotSet)
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <field> <value>",
		Short: "Write one field of a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.st.SetField(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

// dump печатает запись в формате фикстур, её можно сразу отдать seed.
func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <key>...",
		Short: "Print records as a YAML fixture",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := a.st.(store.Dumper)
			if !ok {
				return fmt.Errorf("%s store cannot dump records", a.cfg.StoreDriver)
			}
			f := seed.File{Name: "dump"}
			for _, key := range args {
				fields, err := d.Fields(cmd.Context(), key)
				if err != nil {
					return err
				}
				if fields == nil {
					continue
				}
				f.Records = append(f.Records, seed.Record{Key: key, Fields: fields})
			}
			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			if err := enc.Encode(f); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [dir]",
		Short: "Write YAML fixtures into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SeedDir
			if len(args) == 1 {
				dir = args[0]
			}
			files, err := seed.LoadDir(dir)
			if err != nil {
				return err
			}
			n, err := seed.Apply(cmd.Context(), a.st, files)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "seeded %d fields from %d files\n", n, len(files))
			return nil
		},
	}
}
