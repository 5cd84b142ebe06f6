package main

import "cover-sync/cmd"

func main() {
	cmd.Execute()
}
