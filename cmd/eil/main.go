package main

import "github.com/evamaxfield/extract-imported-libraries/internal/cli"

func main() {
	cli.Execute()
}
