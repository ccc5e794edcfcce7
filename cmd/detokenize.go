package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coco-decb/coco/basic"
	"coco-decb/coco/dsk"
)

var (
	detokenizeImage string
	detokenizeBas   string
)

var detokenizeCmd = &cobra.Command{
	Use:   "detokenize [FILE]",
	Short: "Detokenize a Color/Extended/Disk/Super-Extended BASIC program",
	Long: `Detokenize a BASIC program, either a standalone tokenized file given as
FILE, or a BASIC-type file extracted directly from a DECB image using
--image and --bas.`,
	Args:                  cobra.MaximumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		var data []byte
		var err error

		switch {
		case detokenizeImage != "":
			if detokenizeBas == "" {
				fmt.Println("--bas NAME is required when --image is set")
				os.Exit(1)
			}
			var vol *dsk.Volume
			vol, err = dsk.LoadFile(detokenizeImage)
			if err != nil {
				fmt.Println("Mount error!")
				fmt.Println(err)
				os.Exit(1)
			}
			data, err = vol.Extract(detokenizeBas)
		case len(args) == 1:
			data, err = os.ReadFile(args[0])
		default:
			fmt.Println("expected FILE or --image/--bas")
			os.Exit(1)
		}

		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if !basic.IsTokenized(data) {
			fmt.Println("warning: input does not look like a tokenized BASIC program")
		}

		lines, warn, err := basic.Decode(data)
		if err != nil {
			fmt.Println("Detokenize error!")
			fmt.Println(err)
			os.Exit(1)
		}

		for _, line := range lines {
			fmt.Println(line)
		}
		if warn != basic.WarnNone {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
		}
	},
}

func init() {
	detokenizeCmd.Flags().StringVar(&detokenizeImage, "image", "", `DECB image to extract the program from`)
	detokenizeCmd.Flags().StringVar(&detokenizeBas, "bas", "", `Name of the BASIC file within --image`)
	rootCmd.AddCommand(detokenizeCmd)
}
