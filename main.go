// Package main is the entry point for the cricmetrics CLI tool, which computes
// cricket match analytics and serves them over HTTP.
package main

import "github.com/pable/go-cricket-metrics/cmd"

func main() {
	cmd.Execute()
}
