package gopherweb

import (
	"net"
	"strconv"
)

// DefaultWidth bounds all text layout operations unless a call
// overrides it explicitly. 70 columns leaves room for the one
// character type tag on an 80 column client.
const DefaultWidth = 70

// Config holds the server configuration. It is constructed once at
// startup and treated as read only from then on; every component that
// needs a setting receives the Config explicitly rather than reading
// a package global.
type Config struct {
	/* Bind settings */
	BindAddr string // socket bind address, default 127.0.0.1
	Hostname string // advertised hostname (FQDN) used in menu links
	Port     int    // advertised port, default 70

	/* Content settings */
	Root   string // application root prefix, default "/"
	Scheme string // preferred scheme for external URLs, default "gopher"
	Width  int    // menu layout width, default DefaultWidth

	/* Error presentation */
	ShowStackTrace bool // include stack traces in error menus

	/* Concurrency */
	MaxConns int // simultaneous connection cap, 0 means unlimited

	// SecretKey is passed through to the external session
	// collaborator (see SessionCodec); the core never reads it.
	SecretKey string

	/* Logging */
	SysLog Logger
	AccLog Logger
}

// withDefaults fills the zero values in. The result is the Config the
// server actually runs with.
func (c Config) withDefaults() Config {
	if c.BindAddr == "" {
		c.BindAddr = "127.0.0.1"
	}
	if c.Hostname == "" {
		c.Hostname = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 70
	}
	if c.Root == "" {
		c.Root = "/"
	}
	if c.Scheme == "" {
		c.Scheme = "gopher"
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.SysLog == nil {
		c.SysLog = NewStderrLogger(false)
	}
	if c.AccLog == nil {
		c.AccLog = NewStderrLogger(false)
	}
	return c
}

// HostPort returns the advertised host:port pair.
func (c Config) HostPort() string {
	return net.JoinHostPort(c.Hostname, strconv.Itoa(c.Port))
}

// Menu returns a menu builder bound to the advertised host, port and
// layout width.
func (c Config) Menu() *Menu {
	return NewMenu(c.Hostname, c.Port, c.Width)
}

// Formatter returns a text formatter bound to the layout width.
func (c Config) Formatter() *Formatter {
	return NewFormatter(c.Width)
}
