// Package sheets reads the subtitle workbook and knows which worksheet
// becomes which text resource.
package sheets
