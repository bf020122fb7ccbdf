// Package projection converts world-space points into screen-space
// coordinates through a pinhole camera model.
//
// Two camera modes are supported: an orbiting third-person camera whose
// position is derived from spherical angles around a subject, and a
// first-person camera positioned at the subject with free yaw/pitch.
// Projection is a pure function of (point, pose, config); the pose is
// owned and mutated by the caller.
package projection

import (
	"errors"
	"fmt"
	"math"
)

// Mode selects how the camera position and orientation are derived.
type Mode uint8

const (
	// ModeOrbit places the camera on a sphere around the subject,
	// looking back at it.
	ModeOrbit Mode = iota
	// ModeFirstPerson places the camera at the subject, oriented by
	// yaw and pitch directly.
	ModeFirstPerson
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeFirstPerson:
		return "first_person"
	}
	return "unknown"
}

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Orbit holds third-person pose parameters. Angles are in degrees.
type Orbit struct {
	Distance float64 // camera distance from the subject
	Yaw      float64 // horizontal angle around the subject
	Pitch    float64 // vertical angle above the grid plane
}

// Look holds first-person pose parameters. Angles are in degrees.
type Look struct {
	Yaw   float64
	Pitch float64
}

// Pose is a camera pose: the subject position plus mode-specific
// parameters. Only the parameter set matching Mode is consulted.
type Pose struct {
	Mode    Mode
	Subject Vec3
	Orbit   Orbit
	Look    Look
}

// Config holds the viewport and lens parameters for projection.
// It is immutable from the projector's point of view; callers that
// want to animate FOV or zoom pass an updated value each frame.
type Config struct {
	ViewportW int
	ViewportH int
	FOV       float64 // vertical field of view, degrees, in (0, 180)
	Zoom      float64 // screen-space magnification, 1.0 = none
	NearClip  float64 // minimum forward depth before the perspective divide
}

// ErrNonFinite is returned when a coordinate is NaN or infinite.
var ErrNonFinite = errors.New("projection: non-finite coordinate")

// Validate checks the config for degenerate lens parameters.
func (c Config) Validate() error {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return fmt.Errorf("projection: viewport must be positive, got %dx%d", c.ViewportW, c.ViewportH)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("projection: fov must be in (0, 180), got %g", c.FOV)
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("projection: zoom must be positive, got %g", c.Zoom)
	}
	if c.NearClip <= 0 {
		return fmt.Errorf("projection: near clip must be positive, got %g", c.NearClip)
	}
	return nil
}

// Result is a projected point. X and Y may lie outside the viewport;
// culling is the caller's responsibility. Depth is the Euclidean
// distance from the camera to the point, used only for back-to-front
// draw ordering.
type Result struct {
	X, Y  int
	Depth float64
}

const degToRad = math.Pi / 180

// CameraPosition returns the camera's world position for the pose.
// For first-person poses this is the subject itself; for orbit poses
// it is the subject offset by the spherical orbit parameters.
func CameraPosition(pose Pose) Vec3 {
	if pose.Mode == ModeFirstPerson {
		return pose.Subject
	}
	yaw := pose.Orbit.Yaw * degToRad
	pitch := pose.Orbit.Pitch * degToRad
	return Vec3{
		X: pose.Subject.X + pose.Orbit.Distance*math.Cos(pitch)*math.Sin(yaw),
		Y: pose.Subject.Y + pose.Orbit.Distance*math.Sin(pitch),
		Z: pose.Subject.Z + pose.Orbit.Distance*math.Cos(pitch)*math.Cos(yaw),
	}
}

// viewAngles returns the yaw and pitch (radians) of the view rotation.
// An orbit camera looks back at its subject, so the orbit angles are
// flipped into the opposite viewing direction.
func viewAngles(pose Pose) (yaw, pitch float64) {
	if pose.Mode == ModeFirstPerson {
		return pose.Look.Yaw * degToRad, pose.Look.Pitch * degToRad
	}
	return pose.Orbit.Yaw*degToRad + math.Pi, -pose.Orbit.Pitch * degToRad
}

// Project maps a world point to screen space.
//
// The point is translated into camera-relative coordinates, rotated by
// the inverse yaw and then the inverse pitch of the camera facing, and
// run through a perspective divide with screen distance derived from
// the vertical field of view. Forward depth is clamped to cfg.NearClip
// before the divide, so points at or behind the camera plane produce
// valid (if visually unstable) output rather than a singularity.
//
// Non-finite coordinates are rejected with ErrNonFinite.
func Project(p Vec3, pose Pose, cfg Config) (Result, error) {
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return Result{}, fmt.Errorf("%w: (%g, %g, %g)", ErrNonFinite, p.X, p.Y, p.Z)
	}
	cam := CameraPosition(pose)
	yaw, pitch := viewAngles(pose)

	rx := p.X - cam.X
	ry := p.Y - cam.Y
	rz := p.Z - cam.Z

	// Inverse yaw rotation around the vertical axis.
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	vx := rx*cy - rz*sy
	z1 := rx*sy + rz*cy

	// Inverse pitch rotation around the horizontal axis.
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	vy := ry*cp - z1*sp
	vz := ry*sp + z1*cp

	if vz < cfg.NearClip {
		vz = cfg.NearClip
	}

	screenDist := float64(cfg.ViewportH) / 2 / math.Tan(cfg.FOV*degToRad/2)
	sx := float64(cfg.ViewportW)/2 + (vx*screenDist/vz)*cfg.Zoom
	sy2 := float64(cfg.ViewportH)/2 - (vy*screenDist/vz)*cfg.Zoom

	return Result{
		X:     int(math.Round(sx)),
		Y:     int(math.Round(sy2)),
		Depth: Depth(p, pose),
	}, nil
}

// Depth returns the straight-line distance from the camera position to
// the point. It is independent of the projected forward depth and is
// used only to order draw calls far to near.
func Depth(p Vec3, pose Pose) float64 {
	cam := CameraPosition(pose)
	dx := p.X - cam.X
	dy := p.Y - cam.Y
	dz := p.Z - cam.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
