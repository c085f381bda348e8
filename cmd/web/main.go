package main

import "zakup_backend/internal/app"

func main() {
	app.Run()
}
