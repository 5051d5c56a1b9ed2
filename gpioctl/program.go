package gpioctl

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

type OpKind int

const (
	SetPort OpKind = iota
	SetPin
	Read
	Write
)

func (k OpKind) String() string {
	switch k {
	case SetPort:
		return "port"
	case SetPin:
		return "pin"
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one address flag from the command line. Value carries the port or
// pin number, Level the value to write.
type Op struct {
	Kind  OpKind
	Value uint8
	Level gpio.Level
}

func (o Op) String() string {
	switch o.Kind {
	case SetPort, SetPin:
		return fmt.Sprintf("%s=%d", o.Kind, o.Value)
	case Write:
		return fmt.Sprintf("write=%d", levelByte(o.Level))
	}
	return o.Kind.String()
}

// Program is the address flags in the order they were given.
type Program []Op

func (p *Program) add(op Op) {
	*p = append(*p, op)
}

// Address is the port and pin selected so far. It carries over from one
// operation to the next.
type Address struct {
	Port    uint8
	Pin     uint8
	HasPort bool
	HasPin  bool
}

func (a *Address) apply(op Op) {
	switch op.Kind {
	case SetPort:
		a.Port, a.HasPort = op.Value, true
	case SetPin:
		a.Pin, a.HasPin = op.Value, true
	}
}

func levelByte(l gpio.Level) uint8 {
	if l == gpio.High {
		return 1
	}
	return 0
}
