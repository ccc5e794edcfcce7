package main

import "coco-decb/cmd"

func main() {
	cmd.Execute()
}
