package main

import (
	"os"

	"portfolio-tracker/internal/collect"
)

func main() {
	collect.Run(os.Stdin, os.Stdout)
}
