package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coco-decb/coco/dsk"
)

var (
	formatTracks int
	formatSides  int
	formatJVC    bool
)

var formatCmd = &cobra.Command{
	Use:                   "format IMAGE",
	Short:                 "Create a blank, freshly formatted DECB disk image",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		imagePath := args[0]

		vol, err := dsk.Format(formatTracks, formatSides, formatJVC)
		if err != nil {
			fmt.Println("Format error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.SaveFile(imagePath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Formatted %s (%d tracks, %d side(s))\n", imagePath, formatTracks, formatSides)
	},
}

func init() {
	formatCmd.Flags().IntVar(&formatTracks, "tracks", 35, `Tracks per side`)
	formatCmd.Flags().IntVar(&formatSides, "sides", 1, `Number of sides (1 or 2)`)
	formatCmd.Flags().BoolVar(&formatJVC, "jvc-header", false, `Prepend a 5-byte JVC header (authentic CoCo default: no header)`)
	rootCmd.AddCommand(formatCmd)
}
