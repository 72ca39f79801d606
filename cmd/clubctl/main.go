package main

import "github.com/mcoot/clubroster/internal/cli"

func main() {
	cli.Execute()
}
