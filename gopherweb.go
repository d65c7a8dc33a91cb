// Package gopherweb serves net/http applications over the Gopher
// protocol (RFC 1436).
//
// A gopherweb Server accepts TCP connections and sniffs the first
// request line. HTTP requests are handed, byte for byte, to a normal
// net/http server. Gopher requests are translated into synthetic
// GET requests and dispatched through the exact same http.Handler,
// with status code and headers stripped from the response on the way
// back out. The package also provides the menu line model and the
// fixed width text formatter that Gopher content is built from.
package gopherweb

import (
	"path/filepath"
	"strings"
)

const Version = "0.2.0"

const (
	// CrLf terminates every Gopher protocol line, whatever the
	// operating system. Bare LF is tolerated on input only.
	CrLf = "\r\n"

	// End marks the end of a menu transmission.
	End = "."
	LastLine = End + CrLf

	Tab = "\t"

	MaxDisplayLen  = 70   /* RFC 1436 recommended display string length */
	MaxSelectorLen = 255  /* RFC 1436 standard */
	MaxRequestLen  = 1024 /* Bound on the first line of a connection */

	// Placeholder selector/host/port used on lines that a client
	// never follows (info lines, titles, errors).
	NullSelector = "fake"
	NullHost     = "example.com"
	NullPort     = 0

	// TitleSelector marks a Gopher II TITLE resource.
	TitleSelector = "TITLE"
)

/*
 * Item type characters.
 * Collected from RFC 1436, Gopher II and the Gophernicus project.
 * Only the types a client can be expected to render are listed;
 * the rest of the RFC 1436 table is accepted but treated as binary.
 */
type ItemType byte

const (
	/* RFC 1436 standard */
	TypeText      = ItemType('0') /* Plain text file */
	TypeDir       = ItemType('1') /* Gopher submenu */
	TypeCCSO      = ItemType('2') /* CCSO flat database */
	TypeError     = ItemType('3') /* Error message */
	TypeBinHex    = ItemType('4') /* Macintosh BinHex file */
	TypeArchive   = ItemType('5') /* Archive file (zip, tar, gzip) */
	TypeUUEncoded = ItemType('6') /* UUEncoded file */
	TypeSearch    = ItemType('7') /* Index-search query */
	TypeTelnet    = ItemType('8') /* Telnet session */
	TypeBinary    = ItemType('9') /* Binary file, read until TCP close */
	TypeGif       = ItemType('g') /* GIF format graphics file */
	TypeImage     = ItemType('I') /* Image file, client decides rendering */
	TypeTn3270    = ItemType('T') /* tn3270 session */
	TypeRedundant = ItemType('+') /* Redundant server */

	/* Gopher II / Gophernicus */
	TypeHTML  = ItemType('h') /* HTML document */
	TypeInfo  = ItemType('i') /* Informational message */
	TypeDoc   = ItemType('d') /* Word processing document (ps, pdf, doc) */
	TypeSound = ItemType('s') /* Sound file */
	TypeVideo = ItemType(';') /* Video file */
	TypeMime  = ItemType('M') /* MIME file (mbox, emails) */

	/* Fallback when the extension tells us nothing */
	TypeDefault = TypeBinary
)

func (i ItemType) String() string {
	switch i {
	case TypeText:
		return "TXT"
	case TypeDir:
		return "MENU"
	case TypeCCSO:
		return "CCSO"
	case TypeError:
		return "ERR"
	case TypeBinHex:
		return "HEX"
	case TypeArchive:
		return "ARC"
	case TypeUUEncoded:
		return "UUE"
	case TypeSearch:
		return "QRY"
	case TypeTelnet:
		return "TEL"
	case TypeBinary:
		return "BIN"
	case TypeTn3270:
		return "TN3"
	case TypeGif:
		return "GIF"
	case TypeImage:
		return "IMG"
	case TypeHTML:
		return "HTM"
	case TypeInfo:
		return "NFO"
	case TypeDoc:
		return "DOC"
	case TypeSound:
		return "SND"
	case TypeVideo:
		return "VID"
	case TypeMime:
		return "MIME"
	case TypeRedundant:
		return "DUP"
	default:
		return "???"
	}
}

var singleExtMap = map[string]ItemType{
	".txt":  TypeText,
	".md":   TypeText,
	".json": TypeText,
	".xml":  TypeText,
	".yaml": TypeText,
	".s":    TypeText,
	".c":    TypeText,
	".h":    TypeText,
	".py":   TypeText,
	".go":   TypeText,

	".out": TypeBinary,
	".a":   TypeBinary,
	".o":   TypeBinary,
	".exe": TypeBinary,
	".msi": TypeBinary,

	".zip": TypeArchive,
	".tar": TypeArchive,
	".gz":  TypeArchive,
	".bz2": TypeArchive,
	".xz":  TypeArchive,

	".doc":  TypeDoc,
	".docx": TypeDoc,
	".pdf":  TypeDoc,
	".ps":   TypeDoc,

	".gif": TypeGif,

	".jpg":  TypeImage,
	".jpeg": TypeImage,
	".png":  TypeImage,
	".bmp":  TypeImage,

	".html": TypeHTML,
	".htm":  TypeHTML,

	".ogg": TypeSound,
	".mp3": TypeSound,
	".wav": TypeSound,
	".mod": TypeSound,
	".mid": TypeSound,

	".mp4": TypeVideo,
	".mkv": TypeVideo,
	".avi": TypeVideo,

	".mbox": TypeMime,
	".eml":  TypeMime,
}

var doubleExtMap = map[string]ItemType{
	".tar.gz":  TypeArchive,
	".tar.bz2": TypeArchive,
	".tar.xz":  TypeArchive,
}

// GuessType infers an item type from a file name extension, checking
// compound extensions like ".tar.gz" before single ones. Unrecognized
// extensions (and names without any) fall back to TypeDefault.
func GuessType(name string) ItemType {
	nameLower := strings.ToLower(filepath.Base(name))

	if i := strings.IndexByte(nameLower, '.'); i >= 0 {
		if t, ok := doubleExtMap[nameLower[i:]]; ok {
			return t
		}
	}
	if t, ok := singleExtMap[filepath.Ext(nameLower)]; ok {
		return t
	}
	return TypeDefault
}
