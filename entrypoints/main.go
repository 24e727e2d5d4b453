package main

import (
	"github.com/leducanh112/Twitter-API/cmd"
)

func main() {
	cmd.Execute()
}
