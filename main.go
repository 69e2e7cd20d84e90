package main

import "github.com/jjenkins/legislators/cmd"

func main() {
	cmd.Execute()
}
