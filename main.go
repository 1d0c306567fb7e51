package main

import "github.com/ValentinKolb/sio/cmd"

func main() {
	cmd.Execute()
}
