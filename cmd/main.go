package main

import (
	cmd "github.com/kerbaras/spotlight/cmd/spotlight"
)

func main() {
	cmd.Execute()
}
