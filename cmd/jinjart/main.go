// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command jinjart renders the compiled templates of the examples/compiled
// package with a JSON or YAML context.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/open2b/jinja"
	"github.com/open2b/jinja/examples/compiled"
)

func main() {
	jinjart(os.Args...)
}

// exit causes the current program to exit with the given status code.
func exit(status int) {
	os.Exit(status)
}

// stderr prints lines on stderr.
func stderr(lines ...string) {
	for _, l := range lines {
		fmt.Fprint(os.Stderr, l+"\n")
	}
}

// exitError prints msg on stderr with a bold red color and exits with status
// code 1.
func exitError(format string, a ...any) {
	msg := fmt.Errorf(format, a...)
	stderr("\033[1;31m"+msg.Error()+"\033[0m", `exit status 1`)
	exit(1)
}

// jinjart runs command 'jinjart' with given args. First argument must be
// executable name.
func jinjart(args ...string) {
	flag.Usage = commandsHelp["jinjart"]

	// No command provided.
	if len(args) == 1 {
		flag.Usage()
		exit(0)
		return
	}

	cmdArg := args[1]

	// Used by flag.Parse.
	os.Args = append(args[:1], args[2:]...)

	cmd, ok := commands[cmdArg]
	if !ok {
		stderr(
			fmt.Sprintf("jinjart %s: unknown command", cmdArg),
			`Run 'jinjart help' for usage.`,
		)
		exit(1)
		return
	}
	cmd()
}

// commandsHelp maps a command name to a function that prints help for that
// command.
var commandsHelp = map[string]func(){
	"jinjart": func() {
		stderr(
			`Jinjart is a tool for rendering compiled Jinja templates`,
			``,
			`Usage:`,
			``,
			`	   jinjart <command> [arguments]`,
			``,
			`The commands are:`,
			``,
			`	   render      render a template with a context file`,
			`	   list        list the compiled templates`,
			`	   filters     list the available filters`,
			`	   version     print jinjart version`,
			``,
			`Use "jinjart help <command>" for more information about a command.`,
		)
	},
	"render": func() {
		stderr(
			`usage: jinjart render [-o file] [-watch] [-log-level level] template context`,
			``,
			`Render renders the named compiled template with the context read from`,
			`the JSON or YAML file context, that must contain an object.`,
			``,
			`A context value "<<< MAKE ME A FUNCTION >>>" is replaced by a function`,
			`that returns "hello".`,
			``,
			`The -o flag writes the output to the named file instead of the`,
			`standard output. The file is replaced atomically.`,
			``,
			`The -watch flag renders the template again each time the context file`,
			`changes, until interrupted.`,
			``,
			`The -log-level flag sets the log level: debug, info, warn or error.`,
			`The default is the value of the JINJART_LOG_LEVEL environment variable`,
			`or, if not set, warn.`,
		)
	},
	"list": func() {
		stderr(
			`usage: jinjart list`,
			``,
			`List prints the names of the compiled templates.`,
		)
	},
	"filters": func() {
		stderr(
			`usage: jinjart filters`,
			``,
			`Filters prints the names of the filters available to the templates.`,
		)
	},
	"version": func() {
		stderr(
			`usage: jinjart version`,
		)
	},
}

// commands maps a command name to a function that executes that command.
// Commands are called by command-line using:
//
//		jinjart command
//
var commands = map[string]func(){
	"render": func() {
		flag.Usage = commandsHelp["render"]
		o := flag.String("o", "", "write the output to the named file.")
		watch := flag.Bool("watch", false, "render again when the context file changes.")
		level := flag.String("log-level", defaultLogLevel(), "log level: debug, info, warn or error.")
		flag.Parse()
		if flag.NArg() != 2 {
			stderr(`bad number of arguments`)
			flag.Usage()
			exit(1)
			return
		}
		logger, err := newLogger(*level)
		if err != nil {
			exitError("%s", err)
		}
		r := &renderer{
			set:     newSet(),
			name:    flag.Arg(0),
			ctxPath: flag.Arg(1),
			outPath: *o,
			logger:  logger,
			stdout:  os.Stdout,
		}
		if *watch {
			err = r.watch()
		} else {
			err = r.render()
		}
		if err != nil {
			exitError("%s", err)
		}
	},
	"list": func() {
		flag.Usage = commandsHelp["list"]
		flag.Parse()
		for _, name := range newSet().Names() {
			fmt.Println(name)
		}
	},
	"filters": func() {
		flag.Usage = commandsHelp["filters"]
		flag.Parse()
		for _, name := range newSet().Env().Filters.Names() {
			fmt.Println(name)
		}
	},
	"help": func() {
		if len(os.Args) == 1 {
			flag.Usage()
			exit(0)
			return
		}
		topic := os.Args[1]
		help, ok := commandsHelp[topic]
		if !ok {
			fmt.Fprintf(os.Stderr, "jinjart help %s: unknown help topic. Run 'jinjart help'.\n", topic)
			exit(1)
			return
		}
		help()
	},
	"version": func() {
		flag.Usage = commandsHelp["version"]
		flag.Parse()
		fmt.Printf("Runtime version:                   %s\n", semver.Canonical(jinja.ABIVersion))
		fmt.Printf("Compiled templates version:        %s\n", semver.Canonical(compiled.ABI))
		fmt.Printf("Go version used to build jinjart:  %s\n", goruntime.Version())
	},
}

// newSet returns a set with the compiled templates and the extensions.
func newSet() *jinja.Set {
	set := jinja.NewSet(nil)
	registerExtensions(set.Env())
	err := compiled.Register(set)
	if err != nil {
		exitError("%s", err)
	}
	return set
}

// logLevelEnv is the environment variable with the default log level.
const logLevelEnv = "JINJART_LOG_LEVEL"

// defaultLogLevel returns the default value of the -log-level flag.
func defaultLogLevel() string {
	if level := os.Getenv(logLevelEnv); level != "" {
		return level
	}
	return "warn"
}

// newLogger returns a logger that writes to the standard error with the
// given level.
func newLogger(level string) (*slog.Logger, error) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})), nil
}
