// @title           QuickGig API
// @version         1.0
// @description     API биржи коротких смен: работодатели публикуют смены, работники откликаются.
// @contact.name    QuickGig
// @contact.email   support@quickgig.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "quickgig/docs"
	"quickgig/internal/app"
)

func main() {
	app.Run()
}
