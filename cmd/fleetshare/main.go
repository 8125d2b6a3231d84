package main

import "github.com/fleetshare-network/fleetshare/internal/cli"

func main() {
	cli.Execute()
}
