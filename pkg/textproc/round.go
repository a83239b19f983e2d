package textproc

import "math"

// RoundPercent rounds a [0,1] fraction to an integer percentage: round(x*100).
func RoundPercent(x float64) float64 {
	return math.Round(x * 100)
}

// Round1 rounds x to one decimal place: round(x*10)/10.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds x to two decimal places: round(x*100)/100.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
