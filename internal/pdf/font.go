package pdf

import _ "embed"

// DejaVu Sans Condensed, shipped with gofpdf; covers Latin and Cyrillic.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuSans []byte

	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuSansBold []byte
)
