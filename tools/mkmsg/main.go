package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailbuilder/tools/mkmsg/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
