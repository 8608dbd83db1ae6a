package main

import "github.com/Mohsinsiddi/cashdapp/cmd"

func main() {
	cmd.Execute()
}
