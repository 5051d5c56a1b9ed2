package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/app"
	"github.com/jrwynneiii/hydrasdr-tools/info"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/libhydrasdr"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/soapy"
)

var cli struct {
	app.Common `embed:""`

	Serial string `short:"s" default:"${serial}" placeholder:"SERIAL" help:"Open board with specified 64bits serial number."`
	Probe  bool   `help:"Describe the driver backend (modules, attached devices) before the boards."`
}

func main() {
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	conf, vars := app.Setup()
	kong.Parse(&cli,
		kong.Name("hydrasdr_info"),
		kong.Description("List every HydraSDR board with its identity and sample rates."),
		vars,
	)
	cli.ApplyLogging()

	serial, err := app.ParseSerial(cli.Serial, os.Stdout)
	if err != nil {
		return err
	}
	drv, err := app.OpenDriver(cli.Driver, conf)
	if err != nil {
		return err
	}
	n, err := info.Report(drv, info.Options{
		Serial: serial,
		Probe:  cli.Probe,
		Out:    os.Stdout,
		Log:    log.Default(),
	})
	if err != nil {
		return err
	}
	log.Debugf("Reported %d boards", n)
	return nil
}
