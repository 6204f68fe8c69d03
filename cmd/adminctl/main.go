package main

import "github.com/mcoot/qrclock-gateway/internal/cli"

func main() {
	cli.Execute()
}
