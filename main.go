package main

import "github.com/brandonsean08/basic-blockchain/cmd/basicchain"

func main() {
	basicchain.Execute()
}
