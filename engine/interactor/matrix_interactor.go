package interactor

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
)

// DragType identifies the input device a dolly delta came from. The three
// sources deliver deltas on very different scales, so the distance conversion
// is calibrated per source.
type DragType int

const (
	// DragMouse is a vertical mouse drag, delta in pixels.
	DragMouse DragType = iota
	// DragTwoFinger is a trackpad two-finger scroll, delta in scroll units.
	DragTwoFinger
	// DragWheel is a discrete mouse wheel, delta in wheel ticks.
	DragWheel
)

const (
	dollyMousePerPixel   = 0.0025
	dollyTrackpadPerUnit = 0.05
	dollyWheelPerTick    = 0.10
)

// MatrixInteractor accumulates a 4x4 pose matrix in response to pointer
// deltas. It knows nothing about cameras, lights or models; the concrete
// interactors own one and decide what the matrix is applied to.
//
// Rotations and mouse dollies compose against a snapshot taken when the drag
// started, so each event is a pure function of total drag distance and
// replaying a drag always lands on the same pose. Wheel and trackpad dollies
// have no drag anchor and compose against the current matrix instead.
type MatrixInteractor struct {
	mu *sync.Mutex

	viewWidth  int
	viewHeight int

	modelBounds common.BoundingBox
	modelSize   float32

	fovDegrees float32

	centerOfRotation            mgl32.Vec3
	centerOfRotationAtMouseDown mgl32.Vec3

	matrix            mgl32.Mat4
	matrixAtMouseDown mgl32.Mat4
}

// NewMatrixInteractor returns an accumulator holding an identity pose and a
// degenerate bounding box at the origin.
func NewMatrixInteractor() *MatrixInteractor {
	return &MatrixInteractor{
		mu:                &sync.Mutex{},
		viewWidth:         1,
		viewHeight:        1,
		fovDegrees:        60.0,
		matrix:            mgl32.Ident4(),
		matrixAtMouseDown: mgl32.Ident4(),
	}
}

// SetViewSize records the viewport dimensions in pixels. Rotation angles are
// normalized by width+height so the same drag covers the same arc at any
// window size.
func (m *MatrixInteractor) SetViewSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.viewWidth = width
	m.viewHeight = height
}

// ViewSize returns the recorded viewport dimensions in pixels.
func (m *MatrixInteractor) ViewSize() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewWidth, m.viewHeight
}

// SetBoundingBox records the bounds of the content being manipulated. The
// box diagonal scales dolly and fly speeds; near-degenerate content is
// clamped so interaction never freezes on a single point.
func (m *MatrixInteractor) SetBoundingBox(bounds common.BoundingBox) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modelBounds = bounds
	m.modelSize = bounds.ExtentNorm()
	if m.modelSize <= 0.001 {
		m.modelSize = 5.0
	}
}

// BoundingBox returns the recorded content bounds.
func (m *MatrixInteractor) BoundingBox() common.BoundingBox {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelBounds
}

// ModelSize returns the content diagonal used for speed scaling.
func (m *MatrixInteractor) ModelSize() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelSize
}

// SetFieldOfView records the camera's vertical field of view in degrees,
// used to convert pan pixels into world units.
func (m *MatrixInteractor) SetFieldOfView(degrees float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fovDegrees = degrees
}

// SetCenterOfRotation sets the world-space point drags orbit around.
func (m *MatrixInteractor) SetCenterOfRotation(center mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.centerOfRotation = center
}

// CenterOfRotation returns the world-space point drags orbit around.
func (m *MatrixInteractor) CenterOfRotation() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.centerOfRotation
}

// Matrix returns the current accumulated pose.
func (m *MatrixInteractor) Matrix() mgl32.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matrix
}

// SetMatrix replaces the current pose without touching the drag snapshot.
func (m *MatrixInteractor) SetMatrix(matrix mgl32.Mat4) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matrix = matrix
}

// MatrixAtMouseDown returns the pose snapshot captured by SetMouseDownInfo.
func (m *MatrixInteractor) MatrixAtMouseDown() mgl32.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matrixAtMouseDown
}

// SetMouseDownInfo snapshots the pose and center of rotation at the start of
// a drag. Subsequent Rotate, RotateZ, Pan and mouse Dolly calls compose
// against this snapshot rather than the live matrix.
func (m *MatrixInteractor) SetMouseDownInfo(matrix mgl32.Mat4, center mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.matrix = matrix
	m.matrixAtMouseDown = matrix
	m.centerOfRotation = center
	m.centerOfRotationAtMouseDown = center
}

// Rotate orbits the pose around the center of rotation. dx and dy are total
// pixel deltas since the drag started; the rotation axis lies in the plane
// of the snapshot pose's right and up vectors, perpendicular to the drag
// direction, and the distance to the center is preserved.
func (m *MatrixInteractor) Rotate(dx, dy int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dx == 0 && dy == 0 {
		return
	}

	base := m.matrixAtMouseDown
	right := base.Mat3().Mul3x1(mgl32.Vec3{1, 0, 0})
	up := base.Mat3().Mul3x1(mgl32.Vec3{0, 1, 0})
	axis := right.Mul(float32(-dy)).Sub(up.Mul(float32(dx))).Normalize()
	theta := m.calcRotateRadians(dx, dy)

	pos := base.Col(3).Vec3()
	dist := m.centerOfRotation.Sub(pos).Len()

	rotation := mgl32.HomogRotate3D(theta, axis).Mul4(rotationOnly(base))
	c := m.centerOfRotation
	m.matrix = mgl32.Translate3D(c.X(), c.Y(), c.Z()).
		Mul4(rotation).
		Mul4(mgl32.Translate3D(0, 0, dist))
}

// RotateWorld rotates the snapshot pose in place about an axis built from
// the supplied world-space basis vectors. Unlike Rotate it does not orbit;
// the translation component of the snapshot is preserved. Light and
// environment interactors use it with the viewing camera's axes so the
// rotation tracks the screen.
func (m *MatrixInteractor) RotateWorld(dx, dy int, xAxis, yAxis mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dx == 0 && dy == 0 {
		return
	}

	axis := xAxis.Mul(float32(-dy)).Sub(yAxis.Mul(float32(dx))).Normalize()
	theta := m.calcRotateRadians(dx, dy)
	m.matrix = mgl32.HomogRotate3D(theta, axis).Mul4(m.matrixAtMouseDown)
}

// RotateZ rolls the pose about its own forward axis. Only the horizontal
// delta contributes; dy is accepted for signature symmetry with Rotate.
func (m *MatrixInteractor) RotateZ(dx, dy int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = dy
	theta := m.calcRotateZRadians(dx)
	m.matrix = m.matrixAtMouseDown.Mul4(mgl32.HomogRotate3DZ(theta))
}

// RotateZWorld rolls the snapshot pose about the supplied world-space axis,
// typically the viewing camera's forward vector.
func (m *MatrixInteractor) RotateZWorld(dx, dy int, forward mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = dy
	theta := m.calcRotateZRadians(dx)
	m.matrix = mgl32.HomogRotate3D(theta, forward).Mul4(m.matrixAtMouseDown)
}

// Dolly moves the pose along its forward axis by a distance proportional to
// the content diagonal. Mouse drags compose against the drag snapshot; wheel
// and trackpad deltas are unanchored and compose against the current matrix.
// Wheel ticks move exactly twice as far as the same trackpad delta.
func (m *MatrixInteractor) Dolly(delta float32, dragType DragType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dist := m.calcDollyDist(delta, dragType)
	base := m.matrix
	if dragType == DragMouse {
		base = m.matrixAtMouseDown
	}
	m.matrix = base.Mul4(mgl32.Translate3D(0, 0, -dist))
}

// Pan slides the pose parallel to the snapshot's view plane and carries the
// center of rotation along with it. dx and dy are total pixel deltas since
// the drag started.
func (m *MatrixInteractor) Pan(dx, dy int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	move := m.calcPanVectorWorld(dx, dy)
	m.centerOfRotation = m.centerOfRotationAtMouseDown.Add(move)
	base := m.matrixAtMouseDown
	m.matrix = mgl32.Translate3D(move.X(), move.Y(), move.Z()).Mul4(base)
}

// CalcPanVectorWorld converts pixel deltas into a world-space translation in
// the snapshot's view plane, scaled so a pixel covers the same apparent
// distance at the center of rotation regardless of how far away it is.
func (m *MatrixInteractor) CalcPanVectorWorld(dx, dy int) mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calcPanVectorWorld(dx, dy)
}

func (m *MatrixInteractor) calcPanVectorWorld(dx, dy int) mgl32.Vec3 {
	base := m.matrixAtMouseDown
	pos := base.Col(3).Vec3()
	dist := m.centerOfRotationAtMouseDown.Sub(pos).Len()

	halfFov := float64(m.fovDegrees) / 2.0 * math.Pi / 180.0
	unitsAtDist := 2.0 * float32(math.Tan(halfFov)) * dist
	unitsPerPixel := unitsAtDist / float32(m.viewHeight)

	local := mgl32.Vec3{
		float32(-dx) * unitsPerPixel,
		float32(dy) * unitsPerPixel,
		0,
	}
	return base.Mat3().Mul3x1(local)
}

// CalcRotateRadians converts a pixel drag into a rotation angle, normalized
// by the viewport perimeter so drags cover the same arc at any window size.
func (m *MatrixInteractor) CalcRotateRadians(dx, dy int) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calcRotateRadians(dx, dy)
}

// CalcRotateZRadians converts a horizontal pixel drag into a roll angle.
func (m *MatrixInteractor) CalcRotateZRadians(dx int) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calcRotateZRadians(dx)
}

// CalcDollyDist converts a dolly delta into a world-space distance scaled by
// the content diagonal.
func (m *MatrixInteractor) CalcDollyDist(delta float32, dragType DragType) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calcDollyDist(delta, dragType)
}

func (m *MatrixInteractor) calcRotateRadians(dx, dy int) float32 {
	span := float32(m.viewWidth + m.viewHeight)
	mag := float32(math.Hypot(float64(dx), float64(dy)))
	return 4.0 * math.Pi * mag / span
}

func (m *MatrixInteractor) calcRotateZRadians(dx int) float32 {
	span := float32(m.viewWidth + m.viewHeight)
	return -4.0 * math.Pi * float32(dx) / span
}

func (m *MatrixInteractor) calcDollyDist(delta float32, dragType DragType) float32 {
	switch dragType {
	case DragTwoFinger:
		return -delta * dollyTrackpadPerUnit * m.modelSize
	case DragWheel:
		return -delta * dollyWheelPerTick * m.modelSize
	case DragMouse:
		fallthrough
	default:
		return delta * dollyMousePerPixel * m.modelSize
	}
}

// rotationOnly strips the translation column, leaving a pure rotation.
func rotationOnly(m mgl32.Mat4) mgl32.Mat4 {
	out := m
	out.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return out
}
