package main

import "dbclone/cmd"

func main() {
	cmd.Execute()
}
