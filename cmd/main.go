package main

import (
	cmd "github.com/archivio/antenati/cmd/antenati"
)

func main() {
	cmd.Execute()
}
