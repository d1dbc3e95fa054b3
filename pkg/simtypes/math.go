package simtypes

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3d is the simulator's 3D vector.
type Vector3d = r3.Vec

// Quaterniond is the simulator's rotation quaternion. Real holds W and
// Imag, Jmag, Kmag hold X, Y, Z.
type Quaterniond = quat.Number

func NewVector3d(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

// NewQuaterniond takes its components in w, x, y, z order.
func NewQuaterniond(w, x, y, z float64) Quaterniond {
	return Quaterniond{Real: w, Imag: x, Jmag: y, Kmag: z}
}

func QuaterniondIdentity() Quaterniond {
	return Quaterniond{Real: 1}
}
