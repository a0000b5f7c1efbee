package scene

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/light"
)

// entity is a renderable object registered with the scene: a pose, an
// enabled flag, and the local-space bounds it contributes to the scene box.
type entity struct {
	name        string
	localBounds common.BoundingBox
	transform   mgl32.Mat4
	enabled     bool
	// indicator entities (axes, light gizmos) are excluded from the
	// scene bounding box so they do not inflate interaction scaling.
	indicator bool
}

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	mu *sync.Mutex

	name   string
	active bool

	nextEntityID uint64
	entities     map[uint64]*entity

	nextLightID uint64
	lights      map[uint64]light.Light

	environmentRotation mgl32.Mat4
}

// Scene is the handle the interaction layer consumes: a registry of entities
// (enable/disable, per-entity transform), lights (direction get/set by id),
// and a bounding-volume query over the registered content.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// AddEntity registers an entity with the scene and returns its id.
	// The entity starts enabled with an identity transform.
	//
	// Parameters:
	//   - name: a human-readable identifier
	//   - localBounds: the entity's local-space bounding box
	//
	// Returns:
	//   - uint64: the assigned entity id
	AddEntity(name string, localBounds common.BoundingBox) uint64

	// AddIndicator registers an indicator entity (axes display, light gizmo)
	// that is excluded from the scene bounding box.
	//
	// Parameters:
	//   - name: a human-readable identifier
	//   - localBounds: the indicator's local-space bounding box
	//
	// Returns:
	//   - uint64: the assigned entity id
	AddIndicator(name string, localBounds common.BoundingBox) uint64

	// RemoveEntity removes an entity from the registry. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the entity id to remove
	RemoveEntity(id uint64)

	// HasEntity reports whether an entity id is registered.
	//
	// Parameters:
	//   - id: the entity id to look up
	//
	// Returns:
	//   - bool: true if the entity exists
	HasEntity(id uint64) bool

	// SetEntityEnabled enables or disables an entity. Disabled entities are
	// skipped by the renderer and excluded from the bounding box.
	//
	// Parameters:
	//   - id: the entity id
	//   - enabled: true to enable
	SetEntityEnabled(id uint64, enabled bool)

	// EntityEnabled returns whether an entity is enabled.
	// Unknown ids report false.
	//
	// Parameters:
	//   - id: the entity id
	//
	// Returns:
	//   - bool: true if the entity exists and is enabled
	EntityEnabled(id uint64) bool

	// SetEntityTransform sets an entity's world transform. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the entity id
	//   - t: the new world transform
	SetEntityTransform(id uint64, t mgl32.Mat4)

	// EntityTransform returns an entity's world transform.
	// Unknown ids return the identity matrix.
	//
	// Parameters:
	//   - id: the entity id
	//
	// Returns:
	//   - mgl32.Mat4: the entity's world transform
	EntityTransform(id uint64) mgl32.Mat4

	// AddLight registers a light with the scene and returns its id.
	//
	// Parameters:
	//   - l: the light to register
	//
	// Returns:
	//   - uint64: the assigned light id
	AddLight(l light.Light) uint64

	// Light retrieves a registered light by id.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the light id
	//
	// Returns:
	//   - light.Light: the light or nil
	Light(id uint64) light.Light

	// SetLightDirection sets the direction of a registered light.
	// Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the light id
	//   - dir: the new direction
	SetLightDirection(id uint64, dir mgl32.Vec3)

	// LightDirection returns the direction of a registered light.
	// Unknown ids return the zero vector.
	//
	// Parameters:
	//   - id: the light id
	//
	// Returns:
	//   - mgl32.Vec3: the light direction
	LightDirection(id uint64) mgl32.Vec3

	// SetEnvironmentRotation sets the world rotation applied to the
	// scene's environment map (skybox and image-based lighting).
	//
	// Parameters:
	//   - r: the rotation matrix
	SetEnvironmentRotation(r mgl32.Mat4)

	// EnvironmentRotation returns the world rotation applied to the
	// scene's environment map.
	//
	// Returns:
	//   - mgl32.Mat4: the rotation matrix
	EnvironmentRotation() mgl32.Mat4

	// BoundingBox returns the axis-aligned box enclosing all enabled,
	// non-indicator entities under their current transforms. An empty scene
	// returns a degenerate box at the origin.
	//
	// Returns:
	//   - common.BoundingBox: the scene bounds
	BoundingBox() common.BoundingBox
}

var _ Scene = &sceneImpl{}

// NewScene creates a new empty Scene with the provided options.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		mu:                  &sync.Mutex{},
		active:              true,
		entities:            make(map[uint64]*entity),
		lights:              make(map[uint64]light.Light),
		environmentRotation: mgl32.Ident4(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *sceneImpl) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *sceneImpl) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *sceneImpl) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *sceneImpl) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *sceneImpl) AddEntity(name string, localBounds common.BoundingBox) uint64 {
	return s.add(name, localBounds, false)
}

func (s *sceneImpl) AddIndicator(name string, localBounds common.BoundingBox) uint64 {
	return s.add(name, localBounds, true)
}

func (s *sceneImpl) add(name string, localBounds common.BoundingBox, indicator bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := atomic.AddUint64(&s.nextEntityID, 1)
	s.entities[id] = &entity{
		name:        name,
		localBounds: localBounds,
		transform:   mgl32.Ident4(),
		enabled:     true,
		indicator:   indicator,
	}
	return id
}

func (s *sceneImpl) RemoveEntity(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entities, id)
}

func (s *sceneImpl) HasEntity(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entities[id]
	return ok
}

func (s *sceneImpl) SetEntityEnabled(id uint64, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entities[id]; ok {
		e.enabled = enabled
	}
}

func (s *sceneImpl) EntityEnabled(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entities[id]; ok {
		return e.enabled
	}
	return false
}

func (s *sceneImpl) SetEntityTransform(id uint64, t mgl32.Mat4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entities[id]; ok {
		e.transform = t
	}
}

func (s *sceneImpl) EntityTransform(id uint64) mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entities[id]; ok {
		return e.transform
	}
	return mgl32.Ident4()
}

func (s *sceneImpl) AddLight(l light.Light) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := atomic.AddUint64(&s.nextLightID, 1)
	s.lights[id] = l
	return id
}

func (s *sceneImpl) Light(id uint64) light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights[id]
}

func (s *sceneImpl) SetLightDirection(id uint64, dir mgl32.Vec3) {
	s.mu.Lock()
	l, ok := s.lights[id]
	s.mu.Unlock()
	if ok {
		l.SetDirection(dir)
	}
}

func (s *sceneImpl) LightDirection(id uint64) mgl32.Vec3 {
	s.mu.Lock()
	l, ok := s.lights[id]
	s.mu.Unlock()
	if ok {
		return l.Direction()
	}
	return mgl32.Vec3{}
}

func (s *sceneImpl) SetEnvironmentRotation(r mgl32.Mat4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environmentRotation = r
}

func (s *sceneImpl) EnvironmentRotation() mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.environmentRotation
}

func (s *sceneImpl) BoundingBox() common.BoundingBox {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out common.BoundingBox
	first := true
	for _, e := range s.entities {
		if !e.enabled || e.indicator {
			continue
		}
		b := e.localBounds.Transformed(e.transform)
		if first {
			out = b
			first = false
		} else {
			out = out.Union(b)
		}
	}
	return out
}
