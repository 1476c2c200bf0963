package main

import "github.com/harrisonrobin/dailies/cmd"

func main() {
	cmd.Execute()
}
