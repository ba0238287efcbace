package main

import (
	"roadwatch.dev/backend/cmd/app"
)

// @title          RoadWatch API
// @version        1.0.0
// @description    Community road incident reporting API: submit, browse and resolve road hazard reports, with nearby search, map clustering, analytics and realtime updates.
// @license.name   MIT License
// @license.url    https://opensource.org/licenses/MIT
// @BasePath       /api
func main() {
	app.Run()
}
