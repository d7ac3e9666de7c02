// Command bufrquery resolves named mnemonic-path queries against decoded
// BUFR subset fixtures and prints the assembled, typed result.
package main

import (
	"fmt"
	"os"

	_ "github.com/ncep-emc/bufrquery/cmd/bufrquery/dev"
	_ "github.com/ncep-emc/bufrquery/cmd/bufrquery/dev/inspect"
	_ "github.com/ncep-emc/bufrquery/cmd/bufrquery/run"
	"github.com/ncep-emc/bufrquery/cmd/bufrquery/root"
)

func main() {
	if err := root.Bufrquery.Exec(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bufrquery:", err)
		os.Exit(1)
	}
}
