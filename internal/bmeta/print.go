package bmeta

import (
	"fmt"
	"io"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Meta метаданные сборки.
type Meta struct {
	Version string
	Date    string
	Commit  string
}

// New подставляет N/A вместо незаданных при сборке значений.
func New(version, date, commit string) Meta {
	return Meta{
		Version: orDefault(version),
		Date:    orDefault(date),
		Commit:  orDefault(commit),
	}
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}

// Print Распечатывает версию, дату и комит сборки.
func Print(w io.Writer, meta Meta) {
	_, _ = fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		meta.Version, meta.Date, meta.Commit)
}
