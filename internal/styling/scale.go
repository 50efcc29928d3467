// Package styling implements the font controls: the global scale stylesheet and
// font sizing of a selected text range.
package styling

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rule is one governed selector and its base size in points at scale 1.0.
type Rule struct {
	Selector string
	Base     float64
}

// BaseSizes is the fixed table the scale stylesheet is derived from.
var BaseSizes = []Rule{
	{Selector: "body", Base: 10.5},
	{Selector: ".resume-header h1", Base: 24},
	{Selector: ".resume-header h2", Base: 10},
	{Selector: ".section-title", Base: 11},
	{Selector: ".exp-header", Base: 10.5},
	{Selector: ".sidebar-title", Base: 10.5},
	{Selector: ".exp-desc, .sidebar-desc, .skill-list, li", Base: 10},
	{Selector: ".exp-sub, .sidebar-sub", Base: 10},
	{Selector: ".contact-row", Base: 9},
	{Selector: ".contact-row i", Base: 10},
}

// Scaled returns base*factor rounded to three decimals.
func Scaled(base, factor float64) float64 {
	return math.Round(base*factor*1000) / 1000
}

// FormatPoints formats a point size without trailing zeros ("12.075pt").
func FormatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

// ScaleStylesheet renders the dynamic rule set for factor. The same factor
// always yields the same text.
func ScaleStylesheet(factor float64) string {
	var sb strings.Builder
	for _, r := range BaseSizes {
		fmt.Fprintf(&sb, "%s { font-size: %s !important; }\n", r.Selector, FormatPoints(Scaled(r.Base, factor)))
	}
	return sb.String()
}
