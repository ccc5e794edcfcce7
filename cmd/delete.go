package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coco-decb/coco/dsk"
)

var deleteCmd = &cobra.Command{
	Use:                   "delete IMAGE NAME",
	Short:                 "Delete a file from a DECB disk image",
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		imagePath, name := args[0], args[1]

		vol, err := dsk.LoadFile(imagePath)
		if err != nil {
			fmt.Println("Mount error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.Delete(name); err != nil {
			fmt.Println("Delete error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.SaveFile(imagePath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", name)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
