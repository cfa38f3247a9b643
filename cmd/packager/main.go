package main

import (
	"os"

	"github.com/devsapp/model-packager/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
