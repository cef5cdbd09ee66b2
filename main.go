package main

import "github.com/ademuri/spotify-history-tools/cmd"

func main() {
	cmd.Execute()
}
