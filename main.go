package main

import "github.com/theirongolddev/debtburn/cmd"

func main() {
	cmd.Execute()
}
