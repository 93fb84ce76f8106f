package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cgrenz/revamb/binaryfile"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "revamb-reloc",
	Short: "Inspect the dynamic-linking inputs of the relocation pipeline",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

var relocationsCmd = &cobra.Command{
	Use:   "relocations <elf>",
	Short: "Dump the absolute-slot relocation records of an ELF binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := binaryfile.Read(args[0])
		if err != nil {
			return err
		}

		header := color.New(color.Bold)
		header.Printf(
			"%-18s %-8s %s\n",
			"address",
			"addend",
			"symbol")
		for _, reloc := range input.Relocations {
			fmt.Printf(
				"0x%-16x %-8d %s\n",
				reloc.Address,
				reloc.Addend,
				reloc.Symbol)
		}

		slog.Debug(
			"relocation table read",
			"path", args[0],
			"machine", input.Machine,
			"records", len(input.Relocations))
		return nil
	},
}

var librariesCmd = &cobra.Command{
	Use:   "libraries <elf>",
	Short: "List the needed shared libraries of an ELF binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := binaryfile.Read(args[0])
		if err != nil {
			return err
		}

		for _, library := range input.Libraries {
			fmt.Println(library)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"enable debug logging")
	rootCmd.AddCommand(relocationsCmd, librariesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
