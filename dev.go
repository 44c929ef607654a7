package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/retroenv/retrogolib/log"

	"github.com/okto-vm/okto/vip"
)

// devMode runs the program under a file watcher: every change to the
// ROM file is loaded into the running machine, and a machine fault
// parks the Runner until the next change instead of exiting. With
// -debug it also attaches the debugger UI.
func devMode(logger *log.Logger, opts options) error {
	romFile := filepath.Clean(opts.romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	cfg := vip.Config{IPS: opts.ips, Dev: true}

	var dbg *debugView
	stderrLog := logger
	if opts.debug {
		if opts.cli {
			return errors.New("-debug needs the window frontend, drop -cli")
		}
		dbg = newDebugView()
		cfg.State = dbg.StateFunc
		// The debugger owns the terminal; redirect logging into its
		// log pane instead of stderr.
		paneCfg := log.DefaultConfig()
		paneCfg.Output = dbg.log
		logger = log.NewWithConfig(paneCfg)
	}
	devLog := func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}

	r := vip.NewRunner(logger, cfg)
	if dbg != nil {
		dbg.r = r
		go func() {
			err := dbg.Run()
			r.Halt()
			if err != nil {
				stderrLog.Fatal("debugger", log.Err(err))
			}
		}()
	}

	romCh := make(chan []byte)
	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				rom, err := os.ReadFile(romFile)
				if err != nil {
					devLog("dev: %v", err)
					break
				}
				if !started {
					devLog("dev: start %s", filepath.Base(romFile))
					romCh <- rom
					started = true
				} else {
					devLog("dev: reload %s", filepath.Base(romFile))
					r.Swap(rom)
				}
			case ev := <-watcher.Event:
				if ev.Name == romFile && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				devLog("dev: watcher: %v", err)
			}
		}
	}()

	return runUI(r, <-romCh, opts)
}
