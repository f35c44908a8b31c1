package main

import "github.com/Rorical/RoriSQL/cmd"

func main() {
	cmd.Execute()
}
