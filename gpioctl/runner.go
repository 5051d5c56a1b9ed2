// Package gpioctl reads and writes HydraSDR GPIO pins following an ordered
// list of address operations.
package gpioctl

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

var ErrAddressUnset = errors.New("write needs a port (-p) and a pin (-n) first")

type Runner struct {
	Dev radio.GPIO
	Out io.Writer
	Log *log.Logger
}

// Run executes prog in order. The first failing operation aborts the rest.
func (r *Runner) Run(prog Program) error {
	var addr Address
	for _, op := range prog {
		if err := r.exec(&addr, op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (r *Runner) logger() *log.Logger {
	if r.Log == nil {
		return log.Default()
	}
	return r.Log
}

func (r *Runner) exec(addr *Address, op Op) error {
	switch op.Kind {
	case SetPort, SetPin:
		addr.apply(op)
		return nil
	case Read:
		return r.read(*addr)
	case Write:
		if !addr.HasPort || !addr.HasPin {
			return ErrAddressUnset
		}
		return r.write(addr.Port, addr.Pin, op)
	}
	return fmt.Errorf("unknown operation %d", int(op.Kind))
}

// read dumps every port, one port or one pin depending on what addr holds.
func (r *Runner) read(addr Address) error {
	switch {
	case !addr.HasPort:
		for port := uint8(0); port <= radio.MaxPort; port++ {
			if err := r.dumpPort(port); err != nil {
				return err
			}
		}
		return nil
	case !addr.HasPin:
		return r.dumpPort(addr.Port)
	default:
		return r.dumpPin(addr.Port, addr.Pin)
	}
}

func (r *Runner) dumpPort(port uint8) error {
	for pin := uint8(0); pin <= radio.MaxPin; pin++ {
		if err := r.dumpPin(port, pin); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) dumpPin(port, pin uint8) error {
	level, err := r.Dev.GPIORead(port, pin)
	if err != nil {
		return fmt.Errorf("gpio_read(%d, %d) failed: %w", port, pin, err)
	}
	dir, err := r.Dev.GPIODirRead(port, pin)
	if err != nil {
		return fmt.Errorf("gpiodir_read(%d, %d) failed: %w", port, pin, err)
	}
	fmt.Fprintf(r.Out, "gpio[%1d][%2d] -> 0x%02X %s\n", port, pin, levelByte(level), dir)
	return nil
}

func (r *Runner) write(port, pin uint8, op Op) error {
	r.logger().Debugf("Writing %s to gpio[%d][%d]", op.Level, port, pin)
	if err := r.Dev.GPIOWrite(port, pin, op.Level); err != nil {
		return fmt.Errorf("gpio_write(%d, %d) failed: %w", port, pin, err)
	}
	fmt.Fprintf(r.Out, "0x%02X -> gpio[%1d][%2d]\n", levelByte(op.Level), port, pin)
	return nil
}
