// Package sh provides an interactive shell over a Device.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/rcio.go/pkg/env"
	"github.com/robotalks/rcio.go/pkg/rcio/device"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *env.Config
	Device *device.Device

	closer io.Closer
}

// Action implements a command. The result is printed as JSON in -json
// mode, otherwise with fmt. A nil result prints OK.
type Action func(s *Shell, args []string) (interface{}, error)

const (
	shellKey    = "$shell"
	shellPrompt = "rcio > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(shellPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Format renders a command result for display.
func (s *Shell) Format(result interface{}) (string, error) {
	if s.OutputJSON {
		if result == nil {
			result = map[string]bool{"ok": true}
		}
		out, err := json.Marshal(result)
		return string(out), err
	}
	if result == nil {
		return "OK", nil
	}
	return fmt.Sprint(result), nil
}

// Cmd wraps an Action into an ishell command func.
func Cmd(action Action) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		result, err := action(s, c.Args)
		if err == nil {
			var out string
			if out, err = s.Format(result); err == nil {
				c.Println(out)
			}
		}
		if err != nil {
			c.Err(err)
		}
	}
}

// MustBeOpen wraps an Action requiring an open device. The device is
// opened on demand.
func MustBeOpen(action Action) Action {
	return func(s *Shell, args []string) (interface{}, error) {
		if s.Device == nil {
			if err := s.Open(); err != nil {
				return nil, err
			}
		}
		return action(s, args)
	}
}

// MustBeInitialized wraps an Action requiring an initialized device.
// Init runs on demand.
func MustBeInitialized(action Action) Action {
	return MustBeOpen(func(s *Shell, args []string) (interface{}, error) {
		if err := s.Device.Init(); err != nil {
			return nil, err
		}
		return action(s, args)
	})
}

// Open opens the device from Config, replacing any open one.
func (s *Shell) Open() error {
	dev, closer, err := s.Config.NewDevice()
	if err != nil {
		return err
	}
	s.Close()
	s.Device, s.closer = dev, closer
	return nil
}

// Close closes the current device.
func (s *Shell) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
	s.Device, s.closer = nil, nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Close()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// ParseUint parses a register sized argument, decimal or 0x-prefixed hex.
func ParseUint(arg string, bits int, name string) (uint64, error) {
	v, err := strconv.ParseUint(arg, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, device.ErrInvalidArgument)
	}
	return v, nil
}

// ParseUint8 parses a page or offset argument.
func ParseUint8(arg, name string) (uint8, error) {
	v, err := ParseUint(arg, 8, name)
	return uint8(v), err
}

// ParseUint16 parses a register value argument.
func ParseUint16(arg, name string) (uint16, error) {
	v, err := ParseUint(arg, 16, name)
	return uint16(v), err
}

// ParseValues parses register value arguments.
func ParseValues(args []string) ([]uint16, error) {
	values := make([]uint16, len(args))
	for n, arg := range args {
		v, err := ParseUint16(arg, "VALUE")
		if err != nil {
			return nil, err
		}
		values[n] = v
	}
	return values, nil
}

// NeedArgs checks at least n args are given.
func NeedArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%s required: %w", usage, device.ErrInvalidArgument)
	}
	return nil
}

var (
	// OpenCmd (re)opens the device.
	OpenCmd = ishell.Cmd{
		Name: "open",
		Help: "open the configured device",
		Func: Cmd(func(s *Shell, args []string) (interface{}, error) {
			return nil, s.Open()
		}),
	}

	// CloseCmd closes the device.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "close the device",
		Func: Cmd(func(s *Shell, args []string) (interface{}, error) {
			s.Close()
			return nil, nil
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf := env.Default()
	if err := conf.Resolve(flag.CommandLine); err != nil {
		log.Fatalln(err)
	}
	New(conf).Run(flag.Args()...)
}
