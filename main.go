package main

import "github.com/arqons/modelschema/cmd"

func main() {
	cmd.Execute()
}
