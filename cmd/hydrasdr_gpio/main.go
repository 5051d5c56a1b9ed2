package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/app"
	"github.com/jrwynneiii/hydrasdr-tools/gpioctl"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/libhydrasdr"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/soapy"
)

var cli struct {
	app.Common    `embed:""`
	gpioctl.Flags `embed:""`
}

func main() {
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	conf, vars := app.Setup()

	var prog gpioctl.Program
	opts := append(gpioctl.Options(&prog),
		kong.Name("hydrasdr_gpio"),
		kong.Description(gpioctl.Usage),
		vars,
	)
	ctx := kong.Parse(&cli, opts...)
	cli.ApplyLogging()

	if len(prog) == 0 {
		return ctx.PrintUsage(false)
	}

	if cli.Serial == "" {
		cli.Serial = conf.Radio.Serial
	}
	serial, err := app.ParseSerial(cli.Serial, os.Stdout)
	if err != nil {
		return err
	}
	drv, err := app.OpenDriver(cli.Driver, conf)
	if err != nil {
		return err
	}
	board, err := app.OpenBoard(drv, serial)
	if err != nil {
		return err
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Errorf("close() failed: %v", err)
		}
	}()

	runner := &gpioctl.Runner{Dev: board, Out: os.Stdout, Log: log.Default()}
	if err := runner.Run(prog); err != nil {
		ctx.PrintUsage(true)
		return err
	}
	return nil
}
