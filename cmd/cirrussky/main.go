package main

import "github.com/MeKo-Tech/cirrussky/internal/cmd"

func main() {
	cmd.Execute()
}
