package main

import "github.com/kozaktomas/celebrity-twin/cmd"

func main() {
	cmd.Execute()
}
