package main

import "imoveis-scraper/cmd"

func main() {
	cmd.Execute()
}
