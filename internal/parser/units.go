package parser

// Physical constants shared by the parser backends. Pressures are in
// pascal, densities in kg/m³.
const (
	// Atm is standard atmospheric pressure.
	Atm = 101325.0
	// Bar is one bar in pascal.
	Bar = 100000.0
	// Gravity is standard gravitational acceleration in m/s².
	Gravity = 9.80665
	// DensitySalt is the nominal density of seawater.
	DensitySalt = 1025.0
	// DensityFresh is the nominal density of fresh water.
	DensityFresh = 1000.0
)

// Temperature converts a raw reading in units of 0.01 K to degrees Celsius.
func Temperature(raw uint16) float64 {
	return float64(raw)/100.0 - 273.15
}

// Depth converts a raw absolute pressure reading in millibar to a depth in
// metres using the given calibration: atmospheric pressure in pascal and
// hydrostatic coefficient in pascal per metre (water density × gravity).
func Depth(raw uint16, atmospheric, hydrostatic float64) float64 {
	return (float64(raw)*Bar/1000.0 - atmospheric) / hydrostatic
}
