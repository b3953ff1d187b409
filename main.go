package main

import (
	"log"

	"yashubustudio/idgen/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("idgen: %v", err)
	}
}
