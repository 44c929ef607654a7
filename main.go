// Command okto executes CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/okto-vm/okto/chip8"
	"github.com/okto-vm/okto/vip"
)

type options struct {
	romFile string

	cli   bool
	dev   bool
	debug bool
	ips   int
	scale int
}

func main() {
	var (
		opts    options
		quiet   bool
		verbose bool
	)
	flag.BoolVar(&opts.cli, "cli", false, "render to the terminal instead of a window")
	flag.BoolVar(&opts.dev, "dev", false, "enable developer mode (reload the program when its file changes)")
	flag.BoolVar(&opts.debug, "debug", false, "enable the debugger (implies -dev)")
	flag.IntVar(&opts.ips, "ips", chip8.DefaultIPS, "instructions per second")
	flag.IntVar(&opts.scale, "scale", 8, "window pixels per display pixel")
	flag.BoolVar(&quiet, "q", false, "only log errors")
	flag.BoolVar(&verbose, "v", false, "log debug detail")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-dev | -debug] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	opts.romFile = flag.Arg(0)

	logger := newLogger(verbose, quiet)
	if err := run(logger, opts); err != nil {
		logger.Fatal("okto", log.Err(err))
	}
}

func newLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(logger *log.Logger, opts options) error {
	if opts.dev || opts.debug {
		return devMode(logger, opts)
	}

	rom, err := os.ReadFile(opts.romFile)
	if err != nil {
		return err
	}
	r := vip.NewRunner(logger, vip.Config{IPS: opts.ips})
	return runUI(r, rom, opts)
}

// runUI drives the Runner and the chosen frontend together: the
// frontend quits when the Runner stops, and the Runner is halted when
// the frontend quits. Runner errors win over frontend errors, since a
// machine fault is what the user needs to see.
func runUI(r *vip.Runner, rom []byte, opts options) error {
	var (
		runErr error
		exit   = make(chan struct{})
	)
	go func() {
		runErr = r.Run(rom)
		close(exit)
	}()

	var uiErr error
	if opts.cli {
		uiErr = vip.Terminal(r, exit)
	} else {
		uiErr = vip.GUI(r, exit, opts.scale)
	}
	r.Halt()
	<-exit

	if runErr != nil {
		return runErr
	}
	return uiErr
}
