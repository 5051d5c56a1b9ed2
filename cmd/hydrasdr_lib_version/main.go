package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/app"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/libhydrasdr"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/soapy"
)

var cli struct {
	app.Common `embed:""`
}

func main() {
	conf, vars := app.Setup()
	kong.Parse(&cli,
		kong.Name("hydrasdr_lib_version"),
		kong.Description("Print the version of the HydraSDR device library."),
		vars,
	)
	cli.ApplyLogging()

	drv, err := app.OpenDriver(cli.Driver, conf)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	fmt.Printf("HydraSDR lib version: %s\n", drv.LibVersion())
}
