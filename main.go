package main

import (
	"log"
	"os"

	"examplar-api/internal/command"
)

func main() {
	if err := command.NewApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
