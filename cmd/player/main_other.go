//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "player: build with GOOS=js GOARCH=wasm")
	os.Exit(1)
}
