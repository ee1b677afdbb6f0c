package main

import "github.com/beka-birhanu/penguin-maze/cmd"

func main() {
	cmd.Execute()
}
