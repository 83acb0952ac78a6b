package main

import "github.com/budgetwise/backend/cmd"

func main() {
	cmd.Execute()
}
