package helper

import (
	"fmt"
	"math"
	"strings"
)

// RoundNumbers — округление вниз до decimals знаков, как делает бэкенд.
func RoundNumbers(value float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Floor(value*p) / p
}

// SupressNotation — цена без научной нотации, e.g. 8e-5 -> "0.00008".
func SupressNotation(num float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return fmt.Sprintf("%.*f", precision, num)
}

// SplitTicker — разбор тикера алерт-фида "<exchange>:<asset>-<quote>".
func SplitTicker(ticker string) (exchange, asset, quote string, ok bool) {
	i := strings.IndexByte(ticker, ':')
	if i <= 0 || i >= len(ticker)-1 {
		return "", "", "", false
	}
	exchange = ticker[:i]
	pair := ticker[i+1:]

	j := strings.IndexByte(pair, '-')
	if j <= 0 || j >= len(pair)-1 {
		return "", "", "", false
	}
	return exchange, pair[:j], pair[j+1:], true
}

// IsLeveragedToken — маржинальные токены UP/DOWN не торгуем.
func IsLeveragedToken(asset string) bool {
	return strings.HasSuffix(asset, "UP") || strings.HasSuffix(asset, "DOWN")
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// StdDev — популяционное стандартное отклонение.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	var s float64
	for _, x := range xs {
		d := x - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(xs)))
}

// LogVolatility — sd логарифмических доходностей в процентах.
// Логарифм нормализует ряд, значения сравнимы между активами.
func LogVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return RoundNumbers(StdDev(rets)*100, 6)
}

func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// PearsonCorr — корреляция двух рядов одинаковой длины.
func PearsonCorr(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Linregress — МНК по (xs, ys): наклон, свободный член, корреляция,
// двусторонний p-value и stderr наклона. P-value через нормальную
// аппроксимацию t-распределения — df у нас всегда в сотни свечей.
func Linregress(xs, ys []float64) (slope, intercept, rvalue, pvalue, stderr float64) {
	n := len(xs)
	if n < 3 || n != len(ys) {
		return 0, 0, 0, 1, 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 {
		return 0, my, 0, 1, 0
	}
	slope = sxy / sxx
	intercept = my - slope*mx

	if syy > 0 {
		rvalue = sxy / math.Sqrt(sxx*syy)
	}

	df := float64(n - 2)
	resid := (syy - slope*sxy) / df
	if resid < 0 {
		resid = 0
	}
	stderr = math.Sqrt(resid / sxx)

	if stderr == 0 {
		if slope != 0 {
			return slope, intercept, rvalue, 0, stderr
		}
		return slope, intercept, rvalue, 1, stderr
	}
	t := math.Abs(slope / stderr)
	pvalue = 2 * (1 - 0.5*(1+math.Erf(t/math.Sqrt2)))
	return slope, intercept, rvalue, pvalue, stderr
}
