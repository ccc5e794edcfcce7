package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"coco-decb/coco"
	"coco-decb/coco/dsk"
)

var (
	insertType string
	insertMode string
)

var insertCmd = &cobra.Command{
	Use:                   "insert IMAGE SOURCE NAME",
	Short:                 "Insert a local file into a DECB disk image",
	Args:                  cobra.ExactArgs(3),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		imagePath, sourcePath, name := args[0], args[1], args[2]

		fileType, err := parseFileType(insertType)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fileMode, err := parseFileMode(insertMode)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		data, err := os.ReadFile(sourcePath)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		vol, err := dsk.LoadFile(imagePath)
		if err != nil {
			fmt.Println("Mount error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.Insert(name, data, fileType, fileMode); err != nil {
			fmt.Println("Insert error!")
			fmt.Println(err)
			os.Exit(1)
		}

		if err := vol.SaveFile(imagePath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Inserted %s (%d bytes)\n", name, len(data))
	},
}

func init() {
	insertCmd.Flags().StringVarP(&insertType, "type", "t", "DATA", `File type: BASIC, DATA, ML or TEXT`)
	insertCmd.Flags().StringVar(&insertMode, "mode", "binary", `File mode: binary or ascii`)
	rootCmd.AddCommand(insertCmd)
}

func parseFileType(s string) (coco.FileType, error) {
	switch strings.ToUpper(s) {
	case "BASIC":
		return coco.FileTypeBasic, nil
	case "DATA":
		return coco.FileTypeData, nil
	case "ML":
		return coco.FileTypeML, nil
	case "TEXT":
		return coco.FileTypeText, nil
	default:
		return 0, fmt.Errorf("unknown file type %q (want BASIC, DATA, ML or TEXT)", s)
	}
}

func parseFileMode(s string) (coco.FileMode, error) {
	switch strings.ToLower(s) {
	case "binary":
		return coco.ModeBinary, nil
	case "ascii":
		return coco.ModeASCII, nil
	default:
		return 0, fmt.Errorf("unknown file mode %q (want binary or ascii)", s)
	}
}
