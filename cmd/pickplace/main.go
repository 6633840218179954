package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup SetupCommand `command:"setup" description:"Configure the arm geometry and write the scene file"`
	Run   RunCommand   `command:"run" description:"Collect all items and place them on their destinations"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "pickplace - simulated two-link arm that sorts items onto their places"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
