package main

import (
	"os"

	"github.com/somnologia/somnologia/dreamservice"
)

func main() {
	if err := dreamservice.Run(); err != nil {
		os.Exit(1)
	}
}
