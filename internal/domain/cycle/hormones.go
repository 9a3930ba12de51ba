package cycle

import "math"

func gaussian(x, mu, sigma, height float64) float64 {
	return height * math.Exp(-((x-mu)*(x-mu))/(2*sigma*sigma))
}

// EstimateHormones approximates relative hormone levels for a cycle day with layered
// Gaussian bumps around the estimated ovulation day. Scores are scaled so the largest is 100.
// Illustrative only.
func EstimateHormones(cycleDay, cycleLength int) HormoneProfile {
	x := float64(cycleDay)
	mu := math.Max(2, float64(cycleLength)-LutealLength)

	estrogen := math.Max(
		gaussian(x, mu, 2.0, 1.0),
		gaussian(x, mu+6, 6.0, 0.5),
	)
	progesterone := gaussian(x, mu+5, 4.0, 1.0)
	lh := gaussian(x, mu, 0.8, 1.0)
	testosterone := gaussian(x, mu, 2.3, 0.4)

	base := max(estrogen, progesterone, lh, testosterone)
	if base == 0 {
		base = 1
	}
	scale := func(v float64) int {
		return int(math.Round(v / base * 100))
	}
	return HormoneProfile{
		Estrogen:     scale(estrogen),
		Progesterone: scale(progesterone),
		LH:           scale(lh),
		Testosterone: scale(testosterone),
	}
}
