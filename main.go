package main

import "homechef-api/cli"

var version = "1.0.0"

func main() {
	cli.Execute(version)
}
