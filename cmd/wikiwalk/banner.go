package main

import (
	_ "embed"
	"fmt"
	"io"
)

//go:embed templates/banner.txt
var banner string

// printBanner writes the closing banner, set off by blank lines.
func printBanner(w io.Writer) {
	fmt.Fprint(w, "\n\n\n", banner)
}
