package main

import "dashinbox/cmd/inboxctl/cmd"

func main() {
	cmd.Execute()
}
