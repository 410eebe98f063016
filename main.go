package main

import (
	"log"
	"os"

	"github.com/Rakhulsr/go-taxonomy/app/cmd"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	log.Println("usage: go-taxonomy <migrate|seed|classify>")
}
