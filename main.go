package main

import "github.com/RoshanAH/nix-tinker/cmd"

func main() {
	cmd.Execute()
}
