package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/linkly/internal/app"
	"github.com/fsdevblog/linkly/internal/bmeta"
	"github.com/fsdevblog/linkly/internal/config"
)

// Заполняются при сборке через -ldflags "-X main.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	bmeta.Print(os.Stdout, bmeta.New(buildVersion, buildDate, buildCommit))

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.WithField("address", appConf.ServerAddress).Info("Starting server")
	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.WithError(err).Fatal("server stopped with error")
	}
}
