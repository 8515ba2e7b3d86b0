package main

import (
	"github.com/robotalks/rcio.go/pkg/cli/sh"
	"github.com/robotalks/rcio.go/pkg/env"

	_ "github.com/robotalks/rcio.go/pkg/cli/cmds/rcio"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
