package main

import "github.com/Gthulhu/cpupower/cmd"

func main() {
	cmd.Execute()
}
