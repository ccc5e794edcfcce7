package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coco-decb/coco/dsk"
)

var renameCmd = &cobra.Command{
	Use:                   "rename IMAGE OLD NEW",
	Short:                 "Rename a file in a DECB disk image",
	Args:                  cobra.ExactArgs(3),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		imagePath, oldName, newName := args[0], args[1], args[2]

		vol, err := dsk.LoadFile(imagePath)
		if err != nil {
			fmt.Println("Mount error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.Rename(oldName, newName); err != nil {
			fmt.Println("Rename error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.SaveFile(imagePath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Renamed %s to %s\n", oldName, newName)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
