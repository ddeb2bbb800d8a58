package main

import "github.com/ethanolivertroy/autoreqs/cmd"

func main() {
	cmd.Execute()
}
