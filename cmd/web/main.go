package main

import "petclinic-web/cmd/web/cmd"

func main() {
	cmd.Execute()
}
