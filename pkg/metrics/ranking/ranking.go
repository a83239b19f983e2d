// Package ranking maps four headline metrics onto percentiles via a
// log-normal CDF approximation, purely for display (spec §4.20).
package ranking

import (
	"math"

	"github.com/papercomputeco/duet/pkg/textproc"
)

// logNormalParam is one metric's reference median and sigma for the
// log-normal percentile mapping.
type logNormalParam struct {
	median   float64
	sigma    float64
	inverted bool
}

var (
	volumeParam    = logNormalParam{median: 3000, sigma: 1.2}
	responseParam  = logNormalParam{median: 480, sigma: 1.0, inverted: true}
	silenceParam   = logNormalParam{median: 12, sigma: 0.8}
	asymmetryParam = logNormalParam{median: 20, sigma: 0.9}
)

// Result is the §4.20 output: four independent display percentiles.
type Result struct {
	VolumePercentile    float64
	ResponsePercentile  float64
	SilencePercentile   float64
	AsymmetryPercentile float64
}

// Compute maps the four headline inputs to percentiles. fastestMedianSeconds
// is the fastest participant's median response time in seconds; longestSilenceHours
// is the longest detected silence; asymmetryScore is the volume-share
// asymmetry between participants (0-100 scale, matching §4.16's inputs).
func Compute(messageVolume int, fastestMedianSeconds float64, longestSilenceHours float64, asymmetryScore float64) Result {
	return Result{
		VolumePercentile:    textproc.Round1(percentile(float64(messageVolume), volumeParam)),
		ResponsePercentile:  textproc.Round1(percentile(fastestMedianSeconds, responseParam)),
		SilencePercentile:   textproc.Round1(percentile(longestSilenceHours, silenceParam)),
		AsymmetryPercentile: textproc.Round1(percentile(asymmetryScore, asymmetryParam)),
	}
}

// percentile maps value onto [0,100] via the log-normal CDF, inverting the
// result when faster/smaller should rank higher.
func percentile(value float64, p logNormalParam) float64 {
	if value <= 0 {
		value = 1e-6
	}
	z := (math.Log(value) - math.Log(p.median)) / p.sigma
	cdf := standardNormalCDF(z) * 100
	if p.inverted {
		return 100 - cdf
	}
	return cdf
}

// standardNormalCDF uses the Abramowitz & Stegun 26.2.17 approximation for
// the standard normal CDF, accurate to within 7.5e-8.
func standardNormalCDF(x float64) float64 {
	const (
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
		p  = 0.2316419
		c  = 0.39894228 // 1/sqrt(2*pi)
	)
	if x >= 0 {
		t := 1.0 / (1.0 + p*x)
		poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
		return 1.0 - c*math.Exp(-x*x/2)*poly
	}
	return 1.0 - standardNormalCDF(-x)
}
