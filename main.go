package main

import "github.com/fundsight/fundsight/cmd"

func main() {
	cmd.Execute()
}
