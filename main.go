package main

import (
	"fmt"
	"os"

	"github.com/molt-lang/molt/source/repl"
	"github.com/molt-lang/molt/source/text"
)

func main() {
	if len(os.Args) > 1 {
		for _, fname := range os.Args[1:] {
			contents, e := os.ReadFile(fname)
			if e != nil {
				fmt.Println(text.Red("molt: " + e.Error()))
				os.Exit(1)
			}
			if !repl.Lower(string(contents), fname, os.Stdout) {
				os.Exit(1)
			}
		}
		return
	}
	fmt.Print(text.Logo())
	repl.Start(os.Stdout)
}
