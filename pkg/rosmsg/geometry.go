package rosmsg

// Vector3 mirrors geometry_msgs/msg/Vector3.
type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func NewVector3() *Vector3 {
	v := &Vector3{}
	v.SetDefaults()
	return v
}

func (v *Vector3) TypeName() string { return Vector3TypeName }

func (v *Vector3) SetDefaults() {
	v.X = 0
	v.Y = 0
	v.Z = 0
}

// Quaternion mirrors geometry_msgs/msg/Quaternion. Its default is the
// identity rotation.
type Quaternion struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
	W float64 `yaml:"w" json:"w"`
}

func NewQuaternion() *Quaternion {
	q := &Quaternion{}
	q.SetDefaults()
	return q
}

func (q *Quaternion) TypeName() string { return QuaternionTypeName }

func (q *Quaternion) SetDefaults() {
	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
}
