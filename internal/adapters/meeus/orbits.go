package meeus

import (
	"math"

	"kundli/internal/domain"
)

const nodeDailyMotion = 0.0529538083

// elements are mean orbital elements in degrees (a in AU, Earth radii for the Moon)
type elements struct {
	N, i, w, a, e, M float64
}

// dayNumber counts days from 1999-12-31 0h UT
func dayNumber(jd float64) float64 {
	return jd - 2451543.5
}

func sunElements(d float64) elements {
	return elements{
		N: 0,
		i: 0,
		w: 282.9404 + 4.70935e-5*d,
		a: 1,
		e: 0.016709 - 1.151e-9*d,
		M: 356.0470 + 0.9856002585*d,
	}
}

func moonElements(d float64) elements {
	return elements{
		N: 125.1228 - nodeDailyMotion*d,
		i: 5.1454,
		w: 318.0634 + 0.1643573223*d,
		a: 60.2666,
		e: 0.054900,
		M: 115.3654 + 13.0649929509*d,
	}
}

var planetElements = map[domain.Planet]func(d float64) elements{
	domain.Mercury: func(d float64) elements {
		return elements{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	},
	domain.Venus: func(d float64) elements {
		return elements{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	},
	domain.Mars: func(d float64) elements {
		return elements{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	},
	domain.Jupiter: func(d float64) elements {
		return elements{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	},
	domain.Saturn: func(d float64) elements {
		return elements{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	},
}

func meanNode(d float64) float64 {
	return domain.Normalize(125.1228 - nodeDailyMotion*d)
}

// eccentricAnomaly solves Kepler's equation by Newton iteration (degrees)
func eccentricAnomaly(m, e float64) float64 {
	m = domain.Normalize(m)
	ea := m + e*rad2deg*sind(m)*(1+e*cosd(m))
	for range 20 {
		next := ea - (ea-e*rad2deg*sind(ea)-m)/(1-e*cosd(ea))
		if math.Abs(next-ea) < 1e-7 {
			return next
		}
		ea = next
	}
	return ea
}

// orbit returns rectangular ecliptic coordinates about the primary and the true anomaly
func orbit(el elements) (x, y, z, r, v float64) {
	ea := eccentricAnomaly(el.M, el.e)
	xv := el.a * (cosd(ea) - el.e)
	yv := el.a * math.Sqrt(1-el.e*el.e) * sind(ea)
	v = atan2d(yv, xv)
	r = math.Hypot(xv, yv)

	vw := v + el.w
	x = r * (cosd(el.N)*cosd(vw) - sind(el.N)*sind(vw)*cosd(el.i))
	y = r * (sind(el.N)*cosd(vw) + cosd(el.N)*sind(vw)*cosd(el.i))
	z = r * sind(vw) * sind(el.i)
	return x, y, z, r, v
}

// sunPosition returns the Sun's geocentric longitude and distance
func sunPosition(d float64) (lon, r float64) {
	el := sunElements(d)
	_, _, _, r, v := orbit(el)
	return domain.Normalize(v + el.w), r
}

func moonLongitude(d float64) float64 {
	el := moonElements(d)
	x, y, _, _, _ := orbit(el)
	lon := atan2d(y, x)

	sun := sunElements(d)
	ms := sun.M
	mm := el.M
	ls := sun.M + sun.w
	lm := el.M + el.w + el.N
	dd := lm - ls
	f := lm - el.N

	lon += -1.274*sind(mm-2*dd) +
		0.658*sind(2*dd) -
		0.186*sind(ms) -
		0.059*sind(2*mm-2*dd) -
		0.057*sind(mm-2*dd+ms) +
		0.053*sind(mm+2*dd) +
		0.046*sind(2*dd-ms) +
		0.041*sind(mm-ms) -
		0.035*sind(dd) -
		0.031*sind(mm+ms) -
		0.015*sind(2*f-2*dd) +
		0.011*sind(mm-4*dd)
	return domain.Normalize(lon)
}

func planetLongitude(planet domain.Planet, d float64) float64 {
	el := planetElements[planet](d)
	x, y, z, r, _ := orbit(el)

	if planet == domain.Jupiter || planet == domain.Saturn {
		lonh := atan2d(y, x) + giantPerturbation(planet, d)
		lath := asind(z / r)
		x = r * cosd(lonh) * cosd(lath)
		y = r * sind(lonh) * cosd(lath)
	}

	sunLon, sunR := sunPosition(d)
	xg := x + sunR*cosd(sunLon)
	yg := y + sunR*sind(sunLon)
	return domain.Normalize(atan2d(yg, xg))
}

// giantPerturbation is the mutual Jupiter-Saturn correction to heliocentric longitude
func giantPerturbation(planet domain.Planet, d float64) float64 {
	mj := planetElements[domain.Jupiter](d).M
	ms := planetElements[domain.Saturn](d).M
	switch planet {
	case domain.Jupiter:
		return -0.332*sind(2*mj-5*ms-67.6) -
			0.056*sind(2*mj-2*ms+21) +
			0.042*sind(3*mj-5*ms+21) -
			0.036*sind(mj-2*ms) +
			0.022*cosd(mj-ms) +
			0.023*sind(2*mj-3*ms+52) -
			0.016*sind(mj-5*ms-69)
	case domain.Saturn:
		return 0.812*sind(2*mj-5*ms-67.6) -
			0.229*cosd(2*mj-4*ms-2) +
			0.119*sind(mj-2*ms-3) +
			0.046*sind(2*mj-6*ms-69) +
			0.014*sind(mj-3*ms+32)
	}
	return 0
}

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

func sind(x float64) float64 { return math.Sin(x * deg2rad) }
func cosd(x float64) float64 { return math.Cos(x * deg2rad) }
func tand(x float64) float64 { return math.Tan(x * deg2rad) }
func asind(x float64) float64 { return math.Asin(x) * rad2deg }
func atan2d(y, x float64) float64 { return math.Atan2(y, x) * rad2deg }
