// Package main provides the entry point for the energychart CLI.
//
// energychart renders the web application energy consumption chart, serves
// it over HTTP and prints the hover tooltips for each platform.
//
// Usage:
//
//	energychart render --variant compact --out ./reports
//	energychart serve
//	energychart tooltip "Desktop Web"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
