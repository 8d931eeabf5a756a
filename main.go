package main

import "github.com/r-near/near-sdk-go/cmd"

func main() {
	cmd.Execute()
}
