package gopherweb

import "html"

// htmlRedirect builds the document served for URL: selectors. A
// client without web-link support follows the selector like any
// other, so what comes back must be a plain HTML page (no HTTP
// framing) that a browser pointed at it will follow to the real
// site.
func htmlRedirect(url string) []byte {
	url = html.EscapeString(url)
	content := "<HTML>\n" +
		"<HEAD>\n" +
		"<META HTTP-EQUIV=\"refresh\" content=\"2;URL=" + url + "\">\n" +
		"</HEAD>\n" +
		"<BODY>\n" +
		"You are following an external link to a Web site. You will be\n" +
		"automatically taken to the site shortly. If you do not get sent\n" +
		"there, please click <A HREF=\"" + url + "\">here</A> to go to the web site.\n" +
		"<P>\n" +
		"The URL linked is <A HREF=\"" + url + "\">" + url + "</A>\n" +
		"</BODY>\n" +
		"</HTML>\n"
	return []byte(content)
}
