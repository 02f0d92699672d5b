package graph

// PinchSet holds the images shown while a pet is held, ordered from the
// pointer far to the left of the pet's centre to far to the right.
type PinchSet struct {
	FarLeft   string `yaml:"far_left"`
	Left      string `yaml:"left"`
	NearLeft  string `yaml:"near_left"`
	Center    string `yaml:"center"`
	NearRight string `yaml:"near_right"`
	Right     string `yaml:"right"`
	FarRight  string `yaml:"far_right"`
}

// Empty reports whether no pinch images are configured.
func (p PinchSet) Empty() bool {
	return p == PinchSet{}
}

// Image returns the pinch image for a pointer offset (pointer x minus the
// pet's centre x). It returns "" when the slot is not configured.
func (p PinchSet) Image(offset float64) string {
	switch {
	case offset < -50:
		return p.FarLeft
	case offset < -30:
		return p.Left
	case offset < -15:
		return p.NearLeft
	case offset < 15:
		return p.Center
	case offset < 30:
		return p.NearRight
	case offset < 50:
		return p.Right
	default:
		return p.FarRight
	}
}
