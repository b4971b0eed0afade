package main

import "github.com/nguyentranbao-ct/estate-backoffice/cmd"

func main() {
	cmd.Execute()
}
