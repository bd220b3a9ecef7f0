package main

import (
	"github.com/stratadb/strata-go/cmd"
)

func main() {
	cmd.Execute()
}
