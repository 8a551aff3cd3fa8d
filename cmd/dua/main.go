package main

import "os"

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}
