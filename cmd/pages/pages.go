package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/spacehash/portal/internal/html"
)

var viewsfs embed.FS

// Development helper for working on the portal templates: renders any view
// with sample data, reloading the template files on every request.
func main() {

	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	fmt.Println(wd)

	htmlrender, err := html.NewRenderer(true, viewsfs, "internal/portal/views", ".html")
	if err != nil {
		slog.Error("Failed to initialize template engine", "error", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Portal template development",
		ServerHeader: "SpaceHash",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())

	app.Get("/page/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")

		data := fiber.Map{
			"siteName": "Space Hash Records",
			"tagline":  "Recording. Mixing. Mastering.",
			"theme":    "dark",
			"roster": []fiber.Map{
				{"Name": "Sample Artist", "Bio": "Plays everything with strings."},
			},
			"tracks":        []string{},
			"ready":         true,
			"rows":          []fiber.Map{},
			"dates":         []fiber.Map{},
			"hasDates":      false,
			"hasSelections": false,
			"perDayTotal":   "0",
			"holdMillis":    3000,
		}

		return htmlrender.Render(c, name, data, "layouts/main")
	})

	if err := app.Listen(":8080"); err != nil {
		fmt.Println(err)
	}

}
