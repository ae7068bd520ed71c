package main

import (
	"github.com/Watch-Later/Biohazrd/cmd"

	_ "github.com/Watch-Later/Biohazrd/transform"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
