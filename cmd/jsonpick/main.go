package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/delmare/jsonpick"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	labelColor = "\033[36m"
	errorColor = "\033[31m"
	resetColor = "\033[0m"
)

func main() {
	// Do not handle SIGPIPE, writes to a closed pipe surface as errors
	// which end the loop below.
	signal.Ignore(syscall.SIGPIPE)

	var pointer string
	var colorMode string
	flag.StringVar(&pointer, "p", "", "JSON Pointer (RFC 6901) selecting the container to iterate")
	flag.StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: jsonpick [options] [file]\n\nIterates the direct children of the container selected by -p,\nprinting one child per line.  Reads stdin when no file is given.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var out io.Writer = os.Stdout
	useColor := false
	switch colorMode {
	case "always":
		useColor = true
		out = colorable.NewColorableStdout()
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			useColor = true
			out = colorable.NewColorableStdout()
		}
	case "never":
	default:
		fmt.Fprintf(os.Stderr, "jsonpick: invalid -color value %q\n", colorMode)
		os.Exit(2)
	}

	var it *jsonpick.Iterator
	var err error
	if flag.NArg() > 0 {
		it, err = jsonpick.FromFile(flag.Arg(0), jsonpick.WithPointer(pointer))
	} else {
		it, err = jsonpick.FromReader(os.Stdin, jsonpick.WithPointer(pointer))
	}
	if err != nil {
		fatal(err)
	}
	defer it.Close()

	for it.Advance() {
		item := it.Item()
		encoded, err := json.Marshal(item.Value)
		if err != nil {
			fatal(err)
		}
		var label string
		if it.ObjectTarget() {
			label = item.Key
		} else {
			label = fmt.Sprintf("%d", item.Index)
		}
		if useColor {
			_, err = fmt.Fprintf(out, "%s%s%s: %s\n", labelColor, label, resetColor, encoded)
		} else {
			_, err = fmt.Fprintf(out, "%s: %s\n", label, encoded)
		}
		if err != nil {
			// Stop quietly when the consumer goes away (e.g. piped
			// through head).
			if errors.Is(err, syscall.EPIPE) {
				return
			}
			fatal(err)
		}
	}
	if err := it.Err(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "%sjsonpick: %s%s\n", errorColor, err, resetColor)
	} else {
		fmt.Fprintf(os.Stderr, "jsonpick: %s\n", err)
	}
	os.Exit(1)
}
