package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coco-decb/coco/dsk"
)

var (
	extractOutPath   string
	extractMediaType string
)

var extractCmd = &cobra.Command{
	Use:                   "extract IMAGE NAME",
	Short:                 "Extract a file from a DECB disk image",
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		imagePath, name := args[0], args[1]

		dskType := mediaType(extractMediaType, imagePath)
		if dskType != "dsk" {
			fmt.Printf("Unsupported media type: '%s'\n", dskType)
			return
		}

		vol, err := dsk.LoadFile(imagePath)
		if err != nil {
			fmt.Println("Mount error!")
			fmt.Println(err)
			os.Exit(1)
		}

		data, err := vol.Extract(name)
		if err != nil {
			fmt.Println("Extract error!")
			fmt.Println(err)
			os.Exit(1)
		}

		out := extractOutPath
		if out == "" {
			out = name
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), out)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutPath, "out", "o", "", `Output path, default: NAME in the current directory`)
	extractCmd.Flags().StringVarP(&extractMediaType, "media", "m", "", `Media type, default: file extension`)
	rootCmd.AddCommand(extractCmd)
}
