package main

import "os"

func shutdown(code int) {
	os.Exit(code)
}

func main() {
	if len(os.Args) > 3 {
		shutdown(2)
	}
	os.Exit(1) // want "direct call os.Exit is not allowed in main function"
}
