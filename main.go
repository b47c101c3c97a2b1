package main

import "github.com/ooyeku/csv_parser/cmd"

func main() {
	cmd.Execute()
}
