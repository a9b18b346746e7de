package main

import (
	"github.com/leocov-dev/instanceupdater/cmd"
)

func main() {
	cmd.Execute()
}
