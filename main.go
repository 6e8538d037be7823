package main

import (
	"github.com/praetorian-inc/m365/cmd"
)

func main() {
	cmd.Execute()
}
