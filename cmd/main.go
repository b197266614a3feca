// Command autocorrect corrects sentences from the command line.
//
// The sentence is taken from the arguments, or read line by line from stdin
// when no arguments are given:
//
//	autocorrect -lang English "helo wrld"
//	cat messages.txt | autocorrect -lang Indonesia -json
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"autocorrect/internal/config"
	"autocorrect/internal/corrector"
	"autocorrect/internal/lexicon"
	"autocorrect/internal/observe"
	"autocorrect/pkg/options"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("autocorrect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lang := fs.String("lang", "English", "language label or code")
	configPath := fs.String("config", "", "path to the YAML configuration file")
	asJSON := fs.Bool("json", false, "print the full correction result as JSON")
	timing := fs.Bool("timing", false, "print the time taken per sentence to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "autocorrect: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: observe.ParseLevel(string(cfg.Server.LogLevel))}))

	src := lexicon.NewFileSource(cfg.DictionaryDir, cfg.Languages)
	store := lexicon.NewStore(src, lexicon.WithLoadOptions(lexicon.WithLogger(logger)))
	sc := corrector.New(append(cfg.Corrector.Options(), options.WithLogger(logger))...)
	engine := corrector.NewEngine(cfg.Languages, store, sc, corrector.WithEngineLogger(logger))

	ctx := context.Background()
	enc := json.NewEncoder(stdout)

	correct := func(sentence string) error {
		start := time.Now()
		res, err := engine.CorrectText(ctx, sentence, *lang)
		if err != nil {
			return err
		}
		if *timing {
			fmt.Fprintf(stderr, "corrected in %s\n", time.Since(start))
		}
		if *asJSON {
			return enc.Encode(res)
		}
		_, err = fmt.Fprintln(stdout, res.Corrected)
		return err
	}

	if fs.NArg() > 0 {
		if err := correct(strings.Join(fs.Args(), " ")); err != nil {
			fmt.Fprintf(stderr, "autocorrect: %v\n", err)
			return 1
		}
		return 0
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := correct(scanner.Text()); err != nil {
			fmt.Fprintf(stderr, "autocorrect: %v\n", err)
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "autocorrect: read stdin: %v\n", err)
		return 1
	}
	return 0
}
