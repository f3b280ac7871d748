package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidCamera is returned for a camera that cannot project
var ErrInvalidCamera = errors.New("invalid camera")

// Camera is a perspective camera looking at Target from Eye, Y up
type Camera struct {
	FOV    float64 `json:"fov"` // vertical, degrees
	Aspect float64 `json:"aspect"`
	Near   float64 `json:"near"`
	Far    float64 `json:"far"`
	Eye    Vec3    `json:"eye"`
	Target Vec3    `json:"target"`
}

// DefaultCamera frames a terrain centered at the origin
func DefaultCamera() Camera {
	return Camera{
		FOV:    90,
		Aspect: 1,
		Near:   0.1,
		Far:    1500,
		Eye:    V3(20, 15, 12),
		Target: V3(0, 0, 0),
	}
}

// Validate checks that the camera defines a usable projection
func (c Camera) Validate() error {
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidCamera, c.FOV)
	}
	if c.Aspect <= 0 {
		return fmt.Errorf("%w: aspect must be positive", ErrInvalidCamera)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidCamera, c.Near, c.Far)
	}
	if c.Target.Sub(c.Eye).Len() < 1e-10 {
		return fmt.Errorf("%w: eye and target coincide", ErrInvalidCamera)
	}
	return nil
}

func (c Camera) view() Mat4 {
	return Mat4LookAt(c.Eye, c.Target, V3(0, 1, 0))
}

func (c Camera) proj() Mat4 {
	return Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProj returns the combined view-projection matrix
func (c Camera) ViewProj() Mat4 {
	return c.proj().Mul(c.view())
}

// Project maps a world point to normalized device coordinates
func (c Camera) Project(p Vec3) Vec3 {
	return c.ViewProj().TransformPoint(p)
}

// Ray casts from the camera eye through an NDC point, both in [-1, 1] with
// +Y pointing up the screen.
func (c Camera) Ray(ndcX, ndcY float64) (Ray, error) {
	if err := c.Validate(); err != nil {
		return Ray{}, err
	}
	inv, ok := c.ViewProj().Invert()
	if !ok {
		return Ray{}, fmt.Errorf("%w: view-projection is singular", ErrInvalidCamera)
	}

	near := inv.TransformPoint(V3(ndcX, ndcY, -1))
	far := inv.TransformPoint(V3(ndcX, ndcY, 1))
	return Ray{Origin: near, Dir: far.Sub(near).Normalize()}, nil
}
