package sim

// TerrainSource answers height-above-sea-level queries for the terrain
// correction applied while the vehicle is near the ground. A source may
// decline a query (outside its coverage) by reporting false.
type TerrainSource interface {
	HeightAMSL(loc Location) (float64, bool)
}

// FieldSource supplies the geomagnetic field at a location: intensity in
// gauss plus declination and inclination in degrees. Reporting false falls
// back to a neutral north-aligned field.
type FieldSource interface {
	Field(latDeg, lngDeg float64) (intensityGauss, declinationDeg, inclinationDeg float64, ok bool)
}

// Telemetry receives rate-limited human-readable notices from the core,
// such as ground contact transitions. Implementations must not block.
type Telemetry interface {
	Notice(msg string)
}
