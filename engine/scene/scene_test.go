package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/light"
)

const testEpsilon = 1e-4

func unitBox() common.BoundingBox {
	return common.BoundingBox{
		Min: mgl32.Vec3{-1, -1, -1},
		Max: mgl32.Vec3{1, 1, 1},
	}
}

func TestBoundingBoxFollowsTransforms(t *testing.T) {
	s := NewScene()
	id := s.AddEntity("cube", unitBox())
	s.SetEntityTransform(id, mgl32.Translate3D(10, 0, 0))

	b := s.BoundingBox()
	if math.Abs(float64(b.Center().X()-10)) > testEpsilon {
		t.Errorf("expected bounds centered at x=10, got %v", b.Center())
	}
	if math.Abs(float64(b.ExtentNorm()-unitBox().ExtentNorm())) > testEpsilon {
		t.Errorf("translation changed the extent: %f", b.ExtentNorm())
	}
}

func TestBoundingBoxUnionsEntities(t *testing.T) {
	s := NewScene()
	a := s.AddEntity("a", unitBox())
	s.AddEntity("b", unitBox())
	s.SetEntityTransform(a, mgl32.Translate3D(4, 0, 0))

	b := s.BoundingBox()
	if b.Min.X() != -1 || b.Max.X() != 5 {
		t.Errorf("expected x range [-1, 5], got [%f, %f]", b.Min.X(), b.Max.X())
	}
}

func TestBoundingBoxSkipsDisabledAndIndicators(t *testing.T) {
	s := NewScene()
	s.AddEntity("model", unitBox())
	far := common.BoundingBox{
		Min: mgl32.Vec3{99, 99, 99},
		Max: mgl32.Vec3{101, 101, 101},
	}
	disabled := s.AddEntity("hidden", far)
	s.SetEntityEnabled(disabled, false)
	s.AddIndicator("axes", far)

	b := s.BoundingBox()
	if b.Max.X() > 1+testEpsilon {
		t.Errorf("disabled or indicator entity leaked into bounds: %v", b)
	}
}

func TestEmptySceneBoundsDegenerate(t *testing.T) {
	s := NewScene()
	b := s.BoundingBox()
	if b.ExtentNorm() != 0 {
		t.Errorf("expected degenerate bounds for empty scene, got %v", b)
	}
}

func TestEntityLifecycle(t *testing.T) {
	s := NewScene()
	id := s.AddEntity("cube", unitBox())
	if !s.HasEntity(id) {
		t.Error("entity missing after add")
	}
	if !s.EntityEnabled(id) {
		t.Error("entity should start enabled")
	}
	if s.EntityTransform(id) != mgl32.Ident4() {
		t.Error("entity should start with identity transform")
	}

	s.RemoveEntity(id)
	if s.HasEntity(id) {
		t.Error("entity still present after remove")
	}
	if s.EntityEnabled(id) {
		t.Error("removed entity reports enabled")
	}
	if s.EntityTransform(id) != mgl32.Ident4() {
		t.Error("removed entity should report identity transform")
	}
}

func TestLightDirectionRoundTrip(t *testing.T) {
	s := NewScene()
	id := s.AddLight(light.NewLight(
		light.WithType(light.LightTypeDirectional),
		light.WithDirection(mgl32.Vec3{0, -1, 0}),
	))

	dir := mgl32.Vec3{1, 0, 0}
	s.SetLightDirection(id, dir)
	if got := s.LightDirection(id); got != dir {
		t.Errorf("expected direction %v, got %v", dir, got)
	}

	if got := s.LightDirection(9999); got != (mgl32.Vec3{}) {
		t.Errorf("unknown light should report zero direction, got %v", got)
	}
}

func TestEnvironmentRotationDefaultsToIdentity(t *testing.T) {
	s := NewScene()
	if s.EnvironmentRotation() != mgl32.Ident4() {
		t.Error("environment rotation should start at identity")
	}

	r := mgl32.HomogRotate3DY(0.5)
	s.SetEnvironmentRotation(r)
	if s.EnvironmentRotation() != r {
		t.Error("environment rotation was not stored")
	}
}
