package main

import "github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/cli"

func main() {
	cli.Execute()
}
