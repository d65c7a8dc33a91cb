package gopherweb

import (
	"net/http"
	"strings"
)

// ServerInfo is the operator supplied metadata advertised in the
// auto-generated caps.txt policy file.
type ServerInfo struct {
	Description string
	Admin       string
	Geolocation string
}

// CapsTxt generates a caps.txt document describing this server to
// capability aware clients.
func CapsTxt(info ServerInfo) []byte {
	lines := []string{
		"CAPS",
		"",
		"# This is an automatically generated",
		"# server policy file: caps.txt",
		"",
		"CapsVersion=1",
		"ExpireCapsAfter=1800",
		"",
		"PathDelimeter=/",
		"PathIdentity=.",
		"PathParent=..",
		"PathParentDouble=FALSE",
		"PathEscapeCharacter=\\",
		"PathKeepPreDelimeter=FALSE",
		"",
		"ServerSoftware=gopherweb",
		"ServerSoftwareVersion=" + Version,
		"ServerDescription=" + info.Description,
		"ServerGeolocationString=" + info.Geolocation,
		"",
		"ServerAdmin=" + info.Admin,
		"",
	}
	return []byte(strings.Join(lines, CrLf))
}

// RobotsTxt generates a robots.txt that asks crawlers to stay out.
func RobotsTxt() []byte {
	lines := []string{
		"User-agent: *",
		"Disallow: *",
		"",
		"Crawl-delay: 99999",
		"",
		"# This server does not support scraping",
		"",
	}
	return []byte(strings.Join(lines, CrLf))
}

// CapsHandler serves the generated caps.txt.
func CapsHandler(info ServerInfo) http.Handler {
	body := CapsTxt(info)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(body)
	})
}

// RobotsHandler serves the generated robots.txt.
func RobotsHandler() http.Handler {
	body := RobotsTxt()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(body)
	})
}
