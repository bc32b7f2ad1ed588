package main

import "campus-notifier/cmd/server"

func main() {
	server.Init()
	server.Run()
}
