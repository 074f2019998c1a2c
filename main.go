package main

import "github.com/Jeomhps/happier-hour-api/cmd"

func main() {
	cmd.Execute()
}
