package main

import "github.com/ksenko/lyrstage/internal/cli"

func main() {
	cli.Main()
}
