package schema

// Building is the 3D representation of one file in the city payload.
// Height encodes issue volume, shape encodes the risk level band.
type Building struct {
	ID            string        `json:"id"`
	CanonicalPath string        `json:"canonicalPath"`
	District      string        `json:"district"`
	Shape         BuildingShape `json:"shape"`
	Height        int           `json:"height"` // issue count
	RiskScore     int           `json:"riskScore"`
	RiskLevel     RiskLevel     `json:"riskLevel"`
}

// Road connects the buildings of one correlation group. Weight is
// proportional to the group's risk score.
type Road struct {
	ID            string  `json:"id"`
	GroupID       string  `json:"groupId"`
	CanonicalPath string  `json:"canonicalPath"`
	Weight        float64 `json:"weight"`
	MemberCount   int     `json:"memberCount"`
}

// District groups buildings by their containing directory.
type District struct {
	Name      string   `json:"name"` // directory path; "." for the project root
	Buildings []string `json:"buildings"`
	RiskScore int      `json:"riskScore"` // max building risk inside the district
}

// CityScape is the full visualization payload emitted for the renderer.
type CityScape struct {
	ProjectRoot string     `json:"projectRoot"`
	Buildings   []Building `json:"buildings"`
	Roads       []Road     `json:"roads"`
	Districts   []District `json:"districts"`
}
