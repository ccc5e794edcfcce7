package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"coco-decb/coco/dsk"
)

var listMediaType string

var listCmd = &cobra.Command{
	Use:                   "list FILE",
	Short:                 "List the directory contents of a DECB disk image",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		dskType := mediaType(listMediaType, filename)
		if dskType != "dsk" {
			fmt.Printf("Unsupported media type: '%s'\n", dskType)
			return
		}

		vol, err := dsk.LoadFile(filename)
		if err != nil {
			fmt.Println("Mount error!")
			fmt.Println(err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tMODE\tSIZE\tGRANULES")
		for _, e := range vol.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", e.Name(), e.Type, e.Mode, e.Size, e.ChainLength)
		}
		w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVarP(&listMediaType, "media", "m", "", `Media type, default: file extension`)
	rootCmd.AddCommand(listCmd)
}
