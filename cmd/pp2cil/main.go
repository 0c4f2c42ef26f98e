package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/selinux-policy/pp2cil/cil"
	"github.com/selinux-policy/pp2cil/internal/ppsource"
	"github.com/selinux-policy/pp2cil/policy"
)

const usage = `Translate a compiled SELinux policy module into the target textual policy language

pp2cil reads a compiled policy module package and writes an equivalent
prefix-parenthesized textual policy to its output. With no arguments it
reads standard input and writes standard output; "-" in either position
also means the matching stream.`

// newDecoder constructs the policy decoder the translation pipeline reads
// the module package through. Parsing the binary package format is outside
// this repository's scope (see the Decoder interface in package policy); a
// deployment links in a decoder package that sets this from its
// own init.
var newDecoder func() policy.Decoder

func main() {
	// Ignored so a broken downstream pipe surfaces as a write error from
	// the emitter rather than killing the process outright.
	signal.Ignore(syscall.SIGPIPE)

	app := cli.NewApp()
	app.Name = "pp2cil"
	app.Usage = usage
	app.ArgsUsage = "[IN [OUT]]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Action = runAction

	if err := app.Run(os.Args); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	if ctx.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	in, out, outPath, err := openStreams(ctx.Args().Get(0), ctx.Args().Get(1))
	if err != nil {
		return err
	}
	defer in.Close()

	if err := translate(in, out); err != nil {
		out.Close()
		if outPath != "" {
			os.Remove(outPath)
		}
		return err
	}
	return out.Close()
}

// openStreams resolves the input/output arguments: empty or "-" means the
// standard stream. outPath is empty unless a real output file was created,
// so the caller knows whether a failed run should unlink it.
func openStreams(inArg, outArg string) (in, out *os.File, outPath string, err error) {
	in = os.Stdin
	if inArg != "" && inArg != "-" {
		f, err := os.Open(inArg)
		if err != nil {
			return nil, nil, "", fmt.Errorf("open input: %w", err)
		}
		in = f
	}

	out = os.Stdout
	if outArg != "" && outArg != "-" {
		f, err := os.Create(outArg)
		if err != nil {
			return nil, nil, "", fmt.Errorf("create output: %w", err)
		}
		out, outPath = f, outArg
	}
	return in, out, outPath, nil
}

func translate(in, out *os.File) error {
	if newDecoder == nil {
		return errors.New("no policy decoder registered")
	}

	src, err := ppsource.Load(in)
	if err != nil {
		return err
	}

	dec := newDecoder()
	db, sideCars, err := dec.Decode(src)
	if err != nil {
		return err
	}

	perms, ok := dec.(policy.PermissionDecoder)
	if !ok {
		return errors.New("policy decoder does not implement permission lookup")
	}
	caps, ok := dec.(policy.CapabilityNameLookup)
	if !ok {
		return errors.New("policy decoder does not implement capability lookup")
	}

	opts := cil.Options{Debug: logrus.GetLevel() == logrus.DebugLevel}
	return cil.Translate(db, sideCars, perms, caps, opts, out)
}
