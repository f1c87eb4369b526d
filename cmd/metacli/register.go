package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"metareflect/internal/config"
	"metareflect/internal/meta"
)

func init() {
	registerCmd.Flags().String("export", "", "write a msgpack snapshot of the loaded types to this path")
	registerCmd.Flags().Bool("bootstrap", true, "seed the registry with the primitive numeric and bool types first")
}

var registerCmd = &cobra.Command{
	Use:   "register <types.toml>",
	Short: "Load a TOML type document into a registry and dump its hierarchy",
	Long:  `register reads a [[types]] TOML document, registers each type and wires its bases, then prints the resulting type hierarchy one entry per line.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	path := args[0]

	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		return fmt.Errorf("failed to get export flag: %w", err)
	}
	bootstrap, err := cmd.Flags().GetBool("bootstrap")
	if err != nil {
		return fmt.Errorf("failed to get bootstrap flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	doc, bag, err := config.Load(path)
	if err != nil {
		return err
	}

	var reg *meta.Registry
	if bootstrap {
		reg = meta.Default()
	} else {
		reg = meta.NewRegistry()
	}

	if err := config.Apply(reg, doc); err != nil {
		return err
	}

	if !quiet {
		for _, d := range bag.Items() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", d.Severity, d.Message)
		}
		reg.DumpInfo(func(line string) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		})
	}

	if exportPath != "" {
		if err := config.ExportSnapshot(exportPath, doc); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote snapshot to %s\n", exportPath)
		}
	}

	return nil
}
