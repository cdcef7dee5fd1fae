package utils

import "strings"

// Drawn numbers are handled as strings end to end. Parsing them as
// integers would lose leading zeros: milhar "0007" has dezena "07".

// NormalizeMilhar left-pads a drawn number to exactly 4 characters.
// Inputs longer than 4 characters keep their last 4 digits.
func NormalizeMilhar(milhar string) string {
	if len(milhar) >= 4 {
		return milhar[len(milhar)-4:]
	}
	return strings.Repeat("0", 4-len(milhar)) + milhar
}

// Dezena returns the 2-digit suffix of the normalized milhar.
func Dezena(milhar string) string {
	m := NormalizeMilhar(milhar)
	return m[2:]
}

// Centena returns the 3-digit suffix of the normalized milhar.
func Centena(milhar string) string {
	m := NormalizeMilhar(milhar)
	return m[1:]
}
