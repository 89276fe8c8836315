package handlers

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/ywyher/survey/internal/models"
)

//go:embed views
var viewsFS embed.FS

const mainLayout = "layouts/main"

func newViewEngine() (*html.Engine, error) {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded views: %w", err)
	}

	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFunc("label", func(token any) string {
		return models.Label(fmt.Sprint(token))
	})
	engine.AddFunc("date", func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	})
	engine.AddFunc("has", func(values []string, value string) bool {
		return slices.Contains(values, value)
	})

	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	return engine, nil
}

type formOptions struct {
	Genders        []string
	Occupations    []string
	Answers        []string
	Joints         []string
	ActivityLevels []string
}

var submitFormOptions = formOptions{
	Genders:        models.Tokens(models.Genders),
	Occupations:    models.Tokens(models.Occupations),
	Answers:        models.Tokens(models.Answers),
	Joints:         models.Tokens(models.JointOptions),
	ActivityLevels: models.Tokens(models.ActivityLevels),
}
