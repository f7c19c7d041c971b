package main

import "github.com/vibast-solutions/ms-go-records/cmd"

func main() {
	cmd.Execute()
}
