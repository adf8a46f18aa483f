package display

import (
	"fmt"
	"io"

	"github.com/backmassage/partsinstall/internal/term"
)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `                 _       _           _        _ _
 _ __   __ _ _ __| |_ ___(_)_ __  ___| |_ __ _| | |
| '_ \ / _`+"`"+` | '__| __/ __| | '_ \/ __| __/ _`+"`"+` | | |
| |_) | (_| | |  | |_\__ \ | | | \__ \ || (_| | | |
| .__/ \__,_|_|   \__|___/_|_| |_|___/\__\__,_|_|_|
|_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
