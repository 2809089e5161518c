package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"translationquote/handlers"
)

func main() {
	app := pocketbase.New()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve the interactive calculator client from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Estimation engine over HTTP, mirroring the client-side contract
		se.Router.POST("/api/calculate", handlers.HandleCalculate)

		// Report exports
		se.Router.POST("/api/export/pdf", handlers.HandleExportPDF)
		se.Router.POST("/api/export/excel", handlers.HandleExportExcel)

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/static/")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
