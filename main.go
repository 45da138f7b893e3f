package main

import "github.com/fosrl/posture/cmd"

func main() {
	cmd.Execute()
}
