package main

import "github.com/naka-gawa/github-dashboard/cmd"

func main() {
	cmd.Execute()
}
