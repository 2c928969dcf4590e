package main

import "github.com/KaramelBytes/examdash-cli/cmd"

func main() {
	cmd.Execute()
}
