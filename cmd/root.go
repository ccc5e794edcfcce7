// Package cmd wires the coco/dsk and coco/basic libraries to a cobra CLI,
// in the teacher's thin-command idiom: each subcommand loads its input
// through the library (dsk.LoadFile) or os.ReadFile, dispatches into the
// library, and prints the result with fmt.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "decb",
	Short: "Read and write TRS-80 Color Computer DECB disk images",
	Long: `decb mounts, inspects and mutates TRS-80 Color Computer Disk Extended
Color BASIC disk images stored in the DSK/JVC container format, and
detokenizes Color/Extended/Disk/Super-Extended BASIC programs.`,
}

// Execute runs the root command, exiting the process on error the same
// way the teacher's main.go does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// mediaType resolves an explicit --media flag value, falling back to the
// file extension (lower-cased, without the dot), mirroring the teacher's
// mediaType helper used across amstrad/commodore/spectrum commands.
func mediaType(explicit, filename string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "jvc" {
		return "dsk"
	}
	return ext
}
