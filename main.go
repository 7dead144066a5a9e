package main

import "hubspot-bridge/cmd"

func main() {
	cmd.Execute()
}
