// Command exbuild configures, builds and tests the C++ experiments project.
package main

import (
	"os"

	"github.com/goplus/exbuild/cmd/exbuild/internal"
)

func main() {
	os.Exit(internal.Execute())
}
