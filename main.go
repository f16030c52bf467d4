package main

import (
	"github.com/jgagnon/acbtracker/cmd"
)

func main() {
	cmd.Execute()
}
