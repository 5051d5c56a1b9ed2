//go:build cgo

// Package soapy reaches HydraSDR boards through SoapySDR and its hydrasdr
// module.
package soapy

// #cgo CFLAGS: -g -Wall
// #cgo LDFLAGS: -lSoapySDR
import "C"

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/pothosware/go-soapy-sdr/pkg/device"
	"github.com/pothosware/go-soapy-sdr/pkg/modules"
	"github.com/pothosware/go-soapy-sdr/pkg/sdrlogger"
	"github.com/pothosware/go-soapy-sdr/pkg/version"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

const (
	DriverName = "soapy"

	// soapyDriver is the SoapySDR module key of HydraSDR boards.
	soapyDriver = "hydrasdr"
)

type Driver struct {
	mu     sync.Mutex
	inUse  map[string]bool
	loaded bool
}

func init() {
	radio.Register(&Driver{inUse: map[string]bool{}})
}

func (d *Driver) Name() string {
	return DriverName
}

func (d *Driver) loadModules() {
	if d.loaded {
		return
	}
	d.loaded = true
	log.Debugf("Using SoapySDR versions: ABI: %s API: %s Lib: %s", version.GetABIVersion(), version.GetAPIVersion(), version.GetLibVersion())
	log.Debugf("SoapySDR modules root path: %v", modules.GetRootPath())
	for _, module := range modules.ListModules() {
		moduleVersion := modules.GetModuleVersion(module)
		if len(moduleVersion) == 0 {
			moduleVersion = "[None]"
		}
		log.Debugf("Found SoapySDR module: %v, version: %v", module, moduleVersion)
	}
	sdrlogger.SetLogLevel(sdrlogger.Error)
}

// LibVersion reports the SoapySDR library version; non numeric parts such
// as a git suffix are dropped.
func (d *Driver) LibVersion() radio.LibVersion {
	return parseVersion(version.GetLibVersion())
}

func parseVersion(s string) radio.LibVersion {
	var parts [3]uint32
	for i, field := range strings.SplitN(s, ".", 3) {
		end := 0
		for end < len(field) && field[end] >= '0' && field[end] <= '9' {
			end++
		}
		n, err := strconv.ParseUint(field[:end], 10, 32)
		if err != nil {
			break
		}
		parts[i] = uint32(n)
	}
	return radio.LibVersion{Major: parts[0], Minor: parts[1], Revision: parts[2]}
}

func (d *Driver) Open() (radio.Board, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadModules()

	for _, found := range device.Enumerate(map[string]string{"driver": soapyDriver}) {
		serial := found["serial"]
		if d.inUse[serial] {
			continue
		}
		return d.make(serial)
	}
	return nil, radio.ErrNotFound
}

func (d *Driver) OpenSerial(serial uint64) (radio.Board, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadModules()

	key := fmt.Sprintf("%016x", serial)
	for _, found := range device.Enumerate(map[string]string{"driver": soapyDriver}) {
		if !strings.EqualFold(strings.TrimPrefix(found["serial"], "0x"), key) {
			continue
		}
		if d.inUse[found["serial"]] {
			return nil, radio.ErrBusy
		}
		return d.make(found["serial"])
	}
	return nil, radio.ErrNotFound
}

// make opens one device. Callers hold d.mu.
func (d *Driver) make(serial string) (radio.Board, error) {
	args := map[string]string{"driver": soapyDriver}
	if serial != "" {
		args["serial"] = serial
	}
	dev, err := device.Make(args)
	if err != nil {
		log.Debugf("Could not create SoapySDR device: %v", err)
		return nil, radio.ErrNotFound
	}
	d.inUse[serial] = true
	return &Board{
		dev:    dev,
		serial: serial,
		release: func() {
			d.mu.Lock()
			delete(d.inUse, serial)
			d.mu.Unlock()
		},
		sampleType: radio.Int16IQ,
	}, nil
}

// Probe logs the SoapySDR installation and every device its hydrasdr module
// can see.
func (d *Driver) Probe(logger *log.Logger) {
	logger.Infof("Using SoapySDR versions: ABI: %s API: %s Lib: %s", version.GetABIVersion(), version.GetAPIVersion(), version.GetLibVersion())
	logger.Infof("SoapySDR modules root path: %v", modules.GetRootPath())

	found := modules.ListModules()
	if len(found) == 0 {
		logger.Info("No SoapySDR modules found")
	}
	for _, module := range found {
		moduleVersion := modules.GetModuleVersion(module)
		if len(moduleVersion) == 0 {
			moduleVersion = "[None]"
		}
		logger.Infof("Found SoapySDR module: %v, version: %v", module, moduleVersion)
	}

	devices := device.Enumerate(map[string]string{"driver": soapyDriver})
	logger.Infof("Found %d devices", len(devices))
	for _, dev := range devices {
		logger.Info("Device", "label", dev["label"], "serial", dev["serial"])
	}
}
