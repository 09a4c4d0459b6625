package main

import "github.com/fundex/despesas/cmd"

func main() {
	cmd.Execute()
}
