package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/conorfennell/flashcards/internal/config"
	"github.com/conorfennell/flashcards/internal/console"
	"github.com/conorfennell/flashcards/internal/study"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flags := pflag.NewFlagSet("flashdeck", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	config.RegisterSessionFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Setup(flags)
	if err != nil {
		return err
	}

	menu := &study.Menu{
		Deck:       &study.Deck{},
		Prompter:   console.New(in, out),
		DefaultCSV: cfg.CSV,
		Rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	return menu.Run()
}
