package main

import "github.com/oshokin/fliptime/cmd/fliptime/cmd"

func main() {
	cmd.Execute()
}
