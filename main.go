// file: main.go
// version: 1.0.0
// guid: 3f8a1c2d-9b4e-4f6a-8c1d-2e5b7a9c0d4f

package main

import (
	"fmt"
	"os"

	"github.com/hoangdinhthien/swimadmin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
