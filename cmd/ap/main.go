package main

import "astraplay/cmd/ap/root"

func main() {
	root.Execute()
}
