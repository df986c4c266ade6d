package main

import "github.com/iksnae/assistant-runner/cmd"

func main() {
	cmd.Execute()
}
