package extract

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var appDataPattern = regexp.MustCompile(`^\s*window\.__APP_DATA__ = (.*)`)

// AppData pulls the window.__APP_DATA__ JSON payload out of a snapshot
// HTML page. The payload sits in a script element as a single
// assignment, so a regex on the script text is enough once the right
// element is found.
func AppData(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, "window.__APP_DATA__") {
			return true
		}
		if match := appDataPattern.FindStringSubmatch(text); match != nil {
			payload = match[1]
			return false
		}
		return true
	})
	if payload == "" {
		return "", errors.New("no embedded app data payload found")
	}
	return payload, nil
}
