// Command cashflow computes cash flow forecasts from the terminal and can
// serve the same engine over HTTP.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
