/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/spond-community/spond-go/cmd"

func main() {
	cmd.Execute()
}
