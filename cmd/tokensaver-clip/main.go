// tokensaver-clip cleans clipboard text before it is pasted into an LLM.
package main

import (
	"os"

	"github.com/use-agent/tokensaver/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
