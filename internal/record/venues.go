package record

// Venue is a running-track preset: a loop around a campus playground. Each
// venue ships several track variants (start corner and lap direction) so
// repeated uploads do not draw identical paths.
type Venue struct {
	Name string

	// City and Province are reported in the upload payload.
	City     string
	Province string

	// CenterLat/CenterLng locate the loop; Elevation is the base altitude
	// in meters.
	CenterLat float64
	CenterLng float64
	Elevation float64

	// LoopMeters is the loop circumference.
	LoopMeters float64

	// Variants lists the available start offsets along the loop, in
	// meters. RecordNumber selects one of them (1-based); 0 picks one at
	// random.
	Variants []float64
}

// Venue preset names accepted by the generator.
const (
	VenueXiCao   = "xicao"
	VenueDongCao = "dongcao"
	VenueRandom  = "random"
)

var (
	xiCao = Venue{
		Name:       VenueXiCao,
		City:       "兰州",
		Province:   "甘肃省",
		CenterLat:  35.94361,
		CenterLng:  104.15673,
		Elevation:  1748,
		LoopMeters: 400,
		Variants:   []float64{0, 100, 250},
	}

	dongCao = Venue{
		Name:       VenueDongCao,
		City:       "兰州",
		Province:   "甘肃省",
		CenterLat:  35.94528,
		CenterLng:  104.16092,
		Elevation:  1751,
		LoopMeters: 400,
		Variants:   []float64{50, 180, 320},
	}
)
