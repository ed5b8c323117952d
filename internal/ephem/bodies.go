package ephem

// Body binds a name to its ephemeris target and natural center. The set
// of bodies is fixed at startup; nothing is added or removed at runtime.
type Body struct {
	Name   string
	Target Target
	Center Target // natural center: Sun for planets, Earth for the Moon

	// Inferior marks bodies orbiting closer to the Sun than Earth.
	Inferior bool

	// GM is the gravitational parameter of the two-body system about
	// the natural center, in AU³/day². Values derive from the DE430
	// mass constants.
	GM float64
}

// Geocentric reports whether the body's ephemeris state is natively
// Earth-relative and must be translated to heliocentric by vector
// addition with Earth's heliocentric position.
func (b Body) Geocentric() bool {
	return b.Center == TargetEarth
}

// Gravitational parameters in AU³/day² (DE430 GM constants).
const (
	gmSun     = 2.9591220828559093e-04
	gmMercury = 4.9124804503648e-11
	gmVenus   = 7.2434523326441e-10
	gmEarth   = 8.8876924451256e-10
	gmMoon    = 1.0931894507424e-11
	gmMars    = 9.5495486955508e-11
	gmJupiter = 2.8253458408339e-07
	gmSaturn  = 8.4597060732450e-08
	gmUranus  = 1.2920248257830e-08
	gmNeptune = 1.5243573478851e-08
)

// Planets is the tracked body set in display order. GM for a planet is
// Sun+planet; for the Moon it is Earth+Moon about the Earth.
var Planets = []Body{
	{Name: "Mercury", Target: TargetMercury, Center: TargetSun, Inferior: true, GM: gmSun + gmMercury},
	{Name: "Venus", Target: TargetVenus, Center: TargetSun, Inferior: true, GM: gmSun + gmVenus},
	{Name: "Earth", Target: TargetEarth, Center: TargetSun, GM: gmSun + gmEarth},
	{Name: "Mars", Target: TargetMars, Center: TargetSun, GM: gmSun + gmMars},
	{Name: "Jupiter", Target: TargetJupiter, Center: TargetSun, GM: gmSun + gmJupiter},
	{Name: "Saturn", Target: TargetSaturn, Center: TargetSun, GM: gmSun + gmSaturn},
	{Name: "Uranus", Target: TargetUranus, Center: TargetSun, GM: gmSun + gmUranus},
	{Name: "Neptune", Target: TargetNeptune, Center: TargetSun, GM: gmSun + gmNeptune},
	{Name: "Moon", Target: TargetMoon, Center: TargetEarth, GM: gmEarth + gmMoon},
}

// Names returns the tracked body names in display order.
func Names() []string {
	names := make([]string, len(Planets))
	for i, b := range Planets {
		names[i] = b.Name
	}
	return names
}
