package main

import (
	"github.com/vividblog/vividblog-api/cmd"
)

func main() {
	cmd.Execute()
}
