// Command cuid generates identifiers and stress-tests the generators.
package main

import "github.com/sarchlab/cuid/cuid/cmd"

func main() {
	cmd.Execute()
}
