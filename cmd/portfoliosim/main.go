package main

import (
	"log"
	"portfoliosim/cmd"
	_ "time/tzdata"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
