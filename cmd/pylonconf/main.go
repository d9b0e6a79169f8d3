// Command pylonconf locates the Basler pylon SDK and prints the flags needed
// to build against it.
package main

import "github.com/goplus/pylonconf/cmd/pylonconf/internal"

func main() {
	internal.Execute()
}
