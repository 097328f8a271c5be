package main

import "github.com/danghaonhien/reword-this/cmd/rw/root"

func main() {
	root.Execute()
}
