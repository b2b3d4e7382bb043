// Command contexta ingests documents into a searchable chunk library
// and serves relevance-ranked context to callers.
package main

import (
	"github.com/calypso-labs/contexta/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
