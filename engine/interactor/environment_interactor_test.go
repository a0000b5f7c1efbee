package interactor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/scene"
)

func newTestEnvironmentSetup() (*EnvironmentInteractor, scene.Scene, uint64) {
	scn := scene.NewScene()
	skybox := scn.AddIndicator("skybox", common.NewBoundingBox(
		mgl32.Vec3{-100, -100, -100},
		mgl32.Vec3{100, 100, 100},
	))
	scn.SetEntityEnabled(skybox, false)

	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Translate3D(0, 0, 5)),
	)
	ei := NewEnvironmentInteractor(scn, cam)
	ei.SetViewSize(400, 400)
	ei.SetSkybox(skybox, false)
	return ei, scn, skybox
}

func TestEnvironmentRotationAccumulatesAcrossDrags(t *testing.T) {
	ei, scn, _ := newTestEnvironmentSetup()

	ei.StartMouseDrag()
	ei.Rotate(30, 0)
	ei.EndMouseDrag()
	afterFirst := scn.EnvironmentRotation()

	ei.StartMouseDrag()
	ei.Rotate(30, 0)
	ei.EndMouseDrag()
	afterSecond := scn.EnvironmentRotation()

	if mat4Equal(afterFirst, mgl32.Ident4()) {
		t.Errorf("first drag left the environment rotation at identity")
	}
	if mat4Equal(afterFirst, afterSecond) {
		t.Errorf("second drag should compose with the first, not replace it")
	}
}

func TestEnvironmentRotationIsPureInTotalDrag(t *testing.T) {
	ei, scn, _ := newTestEnvironmentSetup()
	ei.StartMouseDrag()
	ei.Rotate(10, 5)
	ei.Rotate(30, 20)
	ei.EndMouseDrag()
	incremental := scn.EnvironmentRotation()

	ei2, scn2, _ := newTestEnvironmentSetup()
	ei2.StartMouseDrag()
	ei2.Rotate(30, 20)
	ei2.EndMouseDrag()
	direct := scn2.EnvironmentRotation()

	if !mat4Equal(incremental, direct) {
		t.Errorf("environment rotation depended on event history")
	}
}

func TestHiddenSkyboxShownOnlyDuringDrag(t *testing.T) {
	ei, scn, skybox := newTestEnvironmentSetup()

	ei.StartMouseDrag()
	if !scn.EntityEnabled(skybox) {
		t.Errorf("hidden skybox should appear while dragging")
	}

	ei.EndMouseDrag()
	if scn.EntityEnabled(skybox) {
		t.Errorf("skybox should hide again once the drag ends")
	}
}

func TestVisibleSkyboxUntouchedByDrag(t *testing.T) {
	ei, scn, skybox := newTestEnvironmentSetup()
	scn.SetEntityEnabled(skybox, true)
	ei.SetSkybox(skybox, true)

	ei.StartMouseDrag()
	ei.EndMouseDrag()

	if !scn.EntityEnabled(skybox) {
		t.Errorf("drag end hid a skybox that was normally visible")
	}
}
