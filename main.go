package main

import (
	"socialChat/cmd/app"
)

func main() {
	app.GetApp().LetsGo()
}
