package main

import "transit-manager/cmd"

func main() {
	cmd.Execute()
}
