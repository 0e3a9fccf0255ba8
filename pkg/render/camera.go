package render

import (
	"math"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// Camera represents a 3D camera with position and orientation.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	invViewProj    math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position:      math3d.V3(0, 0, 5),
		FOV:           math.Pi / 3, // 60 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           1000,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetRotation sets the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.Roll = roll
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
	c.viewProjDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
	c.viewProjDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
	c.viewProjDirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0

	c.viewDirty = true
	c.viewProjDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		// View = Rotation * Translation(-position), rotation inverted
		rot := math3d.RotateZ(-c.Roll).Mul(
			math3d.RotateX(-c.Pitch)).Mul(
			math3d.RotateY(-c.Yaw))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.invViewProj = c.viewProjMatrix.Inverse()
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// Project transforms a world point to screen coordinates without frustum
// clipping. Screen space has its origin at the top-left corner with Y
// pointing down. ok is false only for points at or behind the camera plane.
func (c *Camera) Project(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, ok bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible); points outside the view
// frustum are not visible.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	x, y, depth, ok := c.Project(worldPos, screenWidth, screenHeight)
	if !ok || depth < -1 || depth > 1 ||
		x < 0 || x > float64(screenWidth) || y < 0 || y > float64(screenHeight) {
		return 0, 0, 0, false
	}
	return x, y, depth, true
}

// ScreenToRay returns the world-space ray through screen point (x, y),
// starting on the near plane.
func (c *Camera) ScreenToRay(x, y float64, screenWidth, screenHeight int) math3d.Ray {
	_ = c.ViewProjectionMatrix()

	ndcX := 2*x/float64(screenWidth) - 1
	ndcY := 1 - 2*y/float64(screenHeight) // Flip Y

	near := c.invViewProj.MulVec4(math3d.V4(ndcX, ndcY, -1, 1)).PerspectiveDivide()
	far := c.invViewProj.MulVec4(math3d.V4(ndcX, ndcY, 1, 1)).PerspectiveDivide()

	return math3d.NewRay(near, far.Sub(near))
}

// Viewport binds a camera to screen dimensions. It is the screen-space
// projection used by screen brushes.
type Viewport struct {
	Camera *Camera
	Width  int
	Height int
}

// NewViewport creates a viewport and matches the camera aspect ratio to it.
func NewViewport(camera *Camera, width, height int) *Viewport {
	camera.SetAspectRatio(float64(width) / float64(height))
	return &Viewport{Camera: camera, Width: width, Height: height}
}

// WorldToScreen projects a world point to viewport pixels.
func (v *Viewport) WorldToScreen(world math3d.Vec3) (math3d.Vec2, bool) {
	x, y, _, ok := v.Camera.Project(world, v.Width, v.Height)
	return math3d.V2(x, y), ok
}

// ScreenToRay returns the world ray through a viewport pixel position.
func (v *Viewport) ScreenToRay(screen math3d.Vec2) math3d.Ray {
	return v.Camera.ScreenToRay(screen.X, screen.Y, v.Width, v.Height)
}
