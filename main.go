package main

import "github.com/uvstool/uvs/cmd"

func main() {
	cmd.Execute()
}
