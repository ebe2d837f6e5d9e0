package main

import (
	"github.com/hance08/bankcore/cmd"
)

func main() {
	cmd.Execute()
}
