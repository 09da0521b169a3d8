package main

import (
	"contacts/internal/app"

	"github.com/sirupsen/logrus"
)

// @title			Contacts API
// @version		1.0
// @description	Contact list with salaries converted to USD and EUR at write time.
// @BasePath		/
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("application stopped")
	}
}
