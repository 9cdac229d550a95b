package main

import (
	"fmt"
	"os"

	"yashubustudio/labelclean/internal/app"
)

func main() {
	if err := app.Run(os.Getenv("LABELCLEAN_CONFIG")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
