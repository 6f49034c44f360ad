// @title           Internship admin console
// @version         1.0
// @description     Admin console over the internship tracking REST API.
// @host            localhost:8080
// @BasePath        /

package main

import "internship_admin/internal/app"

func main() {
	app.Run()
}
