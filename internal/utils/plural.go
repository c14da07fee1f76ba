// Package utils holds small text helpers shared by the report builders.
package utils

import "fmt"

// Plural renders "<n> <noun>" with the Russian plural form picked for n:
// forms holds the words for 1, 2-4 and 5+ (e.g. варн, варна, варнов).
func Plural(n int64, forms [3]string) string {
	nAbs := n
	if nAbs < 0 {
		nAbs = -nAbs
	}

	var form string
	if nAbs%10 == 1 && nAbs%100 != 11 {
		form = forms[0]
	} else if nAbs%10 >= 2 && nAbs%10 <= 4 && (nAbs%100 < 10 || nAbs%100 >= 20) {
		form = forms[1]
	} else {
		form = forms[2]
	}

	return fmt.Sprintf("%d %s", n, form)
}
