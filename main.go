package main

import "archivio/cmd"

func main() {
	cmd.Execute()
}
