package main

import "github.com/raducarabat/hackcontrol/cmd/server"

func main() {
	server.Init()
	server.Run()
}
