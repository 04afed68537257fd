// Command spindle expands generative grammars from the command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"loomworks.net/spindle/internal/store"
	"loomworks.net/spindle/pkg/spindle"
)

func main() {
	var (
		grammarFile = flag.String("g", "", "Rule book file (.json, .yaml, .yml)")
		evalStr     = flag.String("e", "", "Expand a string and exit")
		count       = flag.Int("n", 1, "Number of expansions for -e")
		seed        = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		scoped      = flag.Bool("scoped", false, "Use scoped tag storage instead of flat")
		analyze     = flag.Bool("analyze", false, "Analyze the rule book after loading")
		dbPath      = flag.String("db", "", "SQLite rule-book store path")
		loadName    = flag.String("load", "", "Load a named rule book from the store")
		saveName    = flag.String("save", "", "Save the loaded rule book to the store under this name")
		quiet       = flag.Bool("quiet", false, "Suppress diagnostics")
	)

	flag.Parse()

	opts := []spindle.Option{}
	if *scoped {
		opts = append(opts, spindle.WithScopedTags())
	}
	if *seed != 0 {
		opts = append(opts, spindle.WithSeed(*seed))
	}
	if *analyze {
		opts = append(opts, spindle.WithAnalysis())
	}
	if *quiet {
		opts = append(opts, spindle.WithSilentDiagnostics())
	}

	rules := map[string]any{}
	if *grammarFile != "" {
		loaded, err := spindle.LoadFile(*grammarFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spindle: %v\n", err)
			os.Exit(1)
		}
		rules = loaded
	}

	var st store.Store
	if *dbPath != "" {
		s, err := store.NewSQLite(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spindle: open store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		st = s
	}

	if *loadName != "" {
		if st == nil {
			fmt.Fprintln(os.Stderr, "spindle: -load requires -db")
			os.Exit(1)
		}
		book, err := st.Get(*loadName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spindle: load %q: %v\n", *loadName, err)
			os.Exit(1)
		}
		if book == nil {
			fmt.Fprintf(os.Stderr, "spindle: no stored rule book named %q\n", *loadName)
			os.Exit(1)
		}
		for name, candidates := range book {
			rules[name] = candidates
		}
	}

	g := spindle.New(rules, opts...)

	if *saveName != "" {
		if st == nil {
			fmt.Fprintln(os.Stderr, "spindle: -save requires -db")
			os.Exit(1)
		}
		if err := st.Put(*saveName, store.Book(g.Export())); err != nil {
			fmt.Fprintf(os.Stderr, "spindle: save %q: %v\n", *saveName, err)
			os.Exit(1)
		}
	}

	switch {
	case *evalStr != "":
		for i := 0; i < *count; i++ {
			fmt.Println(g.Expand(*evalStr))
		}

	case stdinIsTerminal():
		runREPL(g, st)

	default:
		// Piped input: expand each non-empty line.
		scan := bufio.NewScanner(os.Stdin)
		for scan.Scan() {
			line := scan.Text()
			if line == "" {
				continue
			}
			fmt.Println(g.Expand(line))
		}
		if err := scan.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "spindle: %v\n", err)
			os.Exit(1)
		}
	}
}
