// Package page locates, fetches and caches the course homework pages and
// extracts their code blocks.
package page

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
)

// BaseURL is the course site path the homework pages live under.
const BaseURL = "http://rpucella.net/courses/focs-fa19/homeworks/"

// homeworkFilePattern recognizes homework source files by name.
var homeworkFilePattern = regexp.MustCompile(`^homework(\d{1,2})\.ml$`)

// InferURL guesses the homework page URL from an OCaml filename,
// connecting homeworkN.ml to <BaseURL>/homeworkN.html. It reports false
// when the filename doesn't match the homework naming scheme.
func InferURL(path string) (string, bool) {
	m := homeworkFilePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	page, err := url.JoinPath(BaseURL, fmt.Sprintf("homework%s.html", m[1]))
	if err != nil {
		return "", false
	}
	return page, true
}
