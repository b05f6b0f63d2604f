package main

import "github.com/osa911/contactform/internal/cli"

func main() {
	cli.Execute()
}
