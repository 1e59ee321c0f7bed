package main

import "github.com/incident-desk/backend/cmd"

func main() {
	cmd.Execute()
}
