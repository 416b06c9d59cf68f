package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

type cliFlags struct {
	config string
	audio  string
	out    string
	watch  bool
	serve  bool
}

// parseFlags parses args (without the program name). Exactly one of
// --audio, --watch and --serve selects the mode.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("minutes", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "config.yaml", "path to the YAML config file")
	fs.StringVarP(&f.audio, "audio", "a", "", "process one recording and exit")
	fs.StringVarP(&f.out, "out", "o", "", "output folder for --audio (default: paths.output)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "watch paths.input for new recordings")
	fs.BoolVar(&f.serve, "serve", false, "serve the upload API on server.addr")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	modes := 0
	for _, on := range []bool{f.audio != "", f.watch, f.serve} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return nil, fmt.Errorf("%w: choose exactly one of --audio, --watch or --serve", ErrUsage)
	}
	if f.out != "" && f.audio == "" {
		return nil, fmt.Errorf("%w: --out requires --audio", ErrUsage)
	}
	return f, nil
}
