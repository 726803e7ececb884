// Command lexor runs LEXOR programs.
//
// Usage:
//
//	lexor [--tokens|--ast] [file]
//
// With no file argument the program is read from standard input. SCAN
// statements read their lines from standard input. --tokens and --ast dump
// the scanner and parser results instead of running.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	lexor "github.com/JiemC137/LEXOR-Interpreter"
)

func main() {
	app := &cli.App{
		Name:      "lexor",
		Usage:     "run a LEXOR program",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "dump the token stream and exit",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "dump the parsed syntax tree and exit",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var src []byte
	var err error
	if path := c.Args().First(); path != "" {
		src, err = os.ReadFile(path)
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}
	source := string(src)

	if c.Bool("tokens") {
		for _, tok := range lexor.Tokenize(source) {
			fmt.Println(tok)
		}
		return nil
	}
	if c.Bool("ast") {
		prog, err := lexor.ParseSource(source)
		if err != nil {
			return lexor.WrapErrorWithSource(err, source)
		}
		repr.Println(prog)
		return nil
	}

	out, err := lexor.Run(source, lexor.NewReaderSource(os.Stdin))
	fmt.Print(out)
	if err != nil {
		return lexor.WrapErrorWithSource(err, source)
	}
	return nil
}
