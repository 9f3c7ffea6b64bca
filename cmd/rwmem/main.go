package main

import "github.com/sarchlab/rwmem/cmd/rwmem/cmd"

func main() {
	cmd.Execute()
}
