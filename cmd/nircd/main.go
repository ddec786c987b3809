// Command nircd runs a nirc bot from a YAML configuration file.
package main

import "github.com/nirc/nirc/cmd/nircd/cmd"

func main() {
	cmd.Execute()
}
