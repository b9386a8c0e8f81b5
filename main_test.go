// file: main_test.go
// version: 1.0.0
// guid: 7b2d4e6f-8a0c-4b1d-9e3f-5a7c9b1d3e5f

package main

import (
	"os"
	"testing"
)

func TestMainHelp(t *testing.T) {
	origArgs := os.Args
	defer func() {
		os.Args = origArgs
	}()

	os.Args = []string{"swimadmin", "--help"}

	main()
}
