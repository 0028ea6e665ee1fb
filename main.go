package main

import "github.com/sensei-lua/lualint/cmd"

func main() {
	cmd.Execute()
}
