package gpioctl

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/alecthomas/kong"
)

const Usage = `Read or write HydraSDR GPIO pins.

Flags are applied in the order given, a port or pin set once stays set for
the following reads and writes.

Examples:
  hydrasdr_gpio -p 0 -n 12 -r     # reads from port 0 pin number 12
  hydrasdr_gpio -r                # reads all pins on all ports
  hydrasdr_gpio -p 0 -n 10 -w 1   # writes port 0 pin number 10 with 1

Hardware Info HydraSDR:
  LED1(out):         -p 0 -n 12 (0=OFF, 1=ON)
  Enable R828D(out): -p 1 -n 7  (0=OFF, 1=ON)
  Enable BiasT(out): -p 1 -n 13 (0=OFF, 1=ON)`

// Flags are the address flags. Their values only hold the last occurrence;
// the full ordered sequence is recorded into the Program passed to Options.
type Flags struct {
	Serial string `short:"s" placeholder:"SERIAL" help:"Open board with specified 64bits serial number."`

	Port  uint8 `short:"p" name:"port_no" type:"gpio-port" placeholder:"0-7" help:"Set port number for subsequent read/write operations."`
	Pin   uint8 `short:"n" name:"pin_no" type:"gpio-pin" placeholder:"0-31" help:"Set pin number for subsequent read/write operations."`
	Read  bool  `short:"r" name:"read" type:"gpio-read" help:"Read value and direction of the selected pin, port or all ports."`
	Write uint8 `short:"w" name:"write" type:"gpio-write" placeholder:"0|1" help:"Write value to the selected pin."`
}

// Options installs the mappers that append every address flag to prog as
// kong scans it.
func Options(prog *Program) []kong.Option {
	return []kong.Option{
		kong.NamedMapper("gpio-port", valueMapper{prog: prog, kind: SetPort}),
		kong.NamedMapper("gpio-pin", valueMapper{prog: prog, kind: SetPin}),
		kong.NamedMapper("gpio-write", valueMapper{prog: prog, kind: Write}),
		kong.NamedMapper("gpio-read", readMapper{prog: prog}),
	}
}

// ParseArgs parses the address flags alone, without touching any device.
func ParseArgs(args []string) (Flags, Program, error) {
	var (
		flags Flags
		prog  Program
	)
	opts := append(Options(&prog),
		kong.Name("hydrasdr_gpio"),
		kong.Description(Usage),
	)
	parser, err := kong.New(&flags, opts...)
	if err != nil {
		return flags, nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return flags, nil, err
	}
	return flags, prog, nil
}

type valueMapper struct {
	prog *Program
	kind OpKind
}

func (m valueMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var s string
	if err := ctx.Scan.PopValueInto(m.kind.String(), &s); err != nil {
		return err
	}
	op := Op{Kind: m.kind}
	var err error
	switch m.kind {
	case SetPort:
		op.Value, err = ParsePort(s)
	case SetPin:
		op.Value, err = ParsePin(s)
	case Write:
		op.Level, err = ParseLevel(s)
		op.Value = levelByte(op.Level)
	}
	if err != nil {
		return err
	}
	target.SetUint(uint64(op.Value))
	m.prog.add(op)
	return nil
}

type readMapper struct {
	prog *Program
}

func (readMapper) IsBool() bool {
	return true
}

func (m readMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	read := true
	if ctx.Scan.Peek().Type == kong.FlagValueToken {
		token := ctx.Scan.Pop()
		v, err := strconv.ParseBool(fmt.Sprint(token.Value))
		if err != nil {
			return fmt.Errorf("bool value must be true or false but got %q", token.Value)
		}
		read = v
	}
	target.SetBool(read)
	if read {
		m.prog.add(Op{Kind: Read})
	}
	return nil
}
