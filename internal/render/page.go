// Package render runs the browser-based icon renderer: a local server hands
// the catalogue to a three.js page, which uploads one PNG per item and
// finally posts the updated catalogue back.
package render

import _ "embed"

// PageName is the default URL path of the render page
const PageName = "render_tool.html"

// Page is the render page served to the browser
//
//go:embed render_tool.html
var Page []byte
