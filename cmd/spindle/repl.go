package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"loomworks.net/spindle/internal/store"
	"loomworks.net/spindle/pkg/spindle"
)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runREPL reads grammar text line by line and prints each expansion.
// Lines starting with ':' are commands.
func runREPL(g *spindle.Grammar, st store.Store) {
	fmt.Println("spindle - generative grammar REPL")
	fmt.Println("Type grammar text to expand it, :help for commands.")

	scan := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("spindle> ")
		if !scan.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := replCommand(g, st, line); quit {
				return
			}
			continue
		}
		fmt.Println(g.Expand(line))
	}
}

func replCommand(g *spindle.Grammar, st store.Store, line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit":
		return true

	case ":help":
		fmt.Println(":rules              list registered rules")
		fmt.Println(":load <file>        add rules from a .json/.yaml file")
		fmt.Println(":open <name>        add a stored rule book (needs -db)")
		fmt.Println(":save <name>        save current rules (needs -db)")
		fmt.Println(":books              list stored rule books (needs -db)")
		fmt.Println(":quit               exit")

	case ":rules":
		for _, name := range g.RuleNames() {
			fmt.Printf("%s (%d candidates)\n", name, len(g.CandidateTexts(name)))
		}

	case ":load":
		if len(fields) < 2 {
			fmt.Println("usage: :load <file>")
			break
		}
		rules, err := spindle.LoadFile(fields[1])
		if err != nil {
			fmt.Printf("load: %v\n", err)
			break
		}
		for name, def := range rules {
			g.Add(name, def)
		}
		fmt.Printf("loaded %d rules\n", len(rules))

	case ":open":
		if st == nil {
			fmt.Println("no store: start with -db")
			break
		}
		if len(fields) < 2 {
			fmt.Println("usage: :open <name>")
			break
		}
		book, err := st.Get(fields[1])
		if err != nil || book == nil {
			fmt.Printf("open: no rule book %q\n", fields[1])
			break
		}
		for name, candidates := range book {
			g.Add(name, candidates)
		}
		fmt.Printf("opened %q (%d rules)\n", fields[1], len(book))

	case ":save":
		if st == nil {
			fmt.Println("no store: start with -db")
			break
		}
		if len(fields) < 2 {
			fmt.Println("usage: :save <name>")
			break
		}
		if err := st.Put(fields[1], store.Book(g.Export())); err != nil {
			fmt.Printf("save: %v\n", err)
			break
		}
		fmt.Printf("saved %q\n", fields[1])

	case ":books":
		if st == nil {
			fmt.Println("no store: start with -db")
			break
		}
		names, err := st.List()
		if err != nil {
			fmt.Printf("books: %v\n", err)
			break
		}
		for _, name := range names {
			fmt.Println(name)
		}

	default:
		fmt.Printf("unknown command %s (try :help)\n", fields[0])
	}
	return false
}
