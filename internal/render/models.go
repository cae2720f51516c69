package render

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// model is one cached furniture mesh. Fallback entries are a unit cube drawn with the
// lit shader; file entries are models loaded from a glTF/OBJ path.
type model struct {
	fallback bool
	model    rl.Model
	mesh     rl.Mesh
	mtl      rl.Material
	bounds   rl.BoundingBox // in model space, unscaled
}

// Resolver maps a mesh reference to a local file once it is available.
type Resolver interface {
	Cached(ref string) (path string, ok bool)
}

// Models maps mesh references to GPU resources. Entries are created on first Draw so
// they are allocated after the window and GL context exist.
type Models struct {
	log      logrus.FieldLogger
	paths    Resolver
	cache    map[string]*model
	viewPos  [3]float32
	lightDir [3]float32
}

// NewModels returns an empty cache. A nil paths treats every reference as a local path.
func NewModels(paths Resolver, log logrus.FieldLogger) *Models {
	return &Models{
		log:      log,
		paths:    paths,
		cache:    make(map[string]*model),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets the camera position used for specular lighting this frame.
func (m *Models) SetView(viewPos [3]float32) {
	m.viewPos = viewPos
}

// get returns the cache entry for ref, loading it on first use. Missing or unreadable
// files fall back to the cube so the instance stays visible and selectable.
func (m *Models) get(ref string) *model {
	if e, ok := m.cache[ref]; ok {
		return e
	}
	path := ref
	if m.paths != nil {
		var ok bool
		if path, ok = m.paths.Cached(ref); !ok {
			// Still downloading: share the plain cube until the file lands.
			return m.get("")
		}
	}
	e := m.load(path)
	m.cache[ref] = e
	return e
}

func (m *Models) load(ref string) *model {
	if ref != "" {
		if _, err := os.Stat(ref); err == nil {
			mdl := rl.LoadModel(ref)
			if rl.IsModelValid(mdl) {
				return &model{model: mdl, bounds: rl.GetModelBoundingBox(mdl)}
			}
			m.log.WithField("mesh", ref).Warn("model failed to load, using cube")
		} else {
			m.log.WithField("mesh", ref).Debug("model file not found, using cube")
		}
	}
	e := &model{
		fallback: true,
		mesh:     rl.GenMeshCube(1, 1, 1),
		mtl:      rl.LoadMaterialDefault(),
		bounds:   rl.NewBoundingBox(rl.NewVector3(-0.5, 0, -0.5), rl.NewVector3(0.5, 1, 0.5)),
	}
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		e.mtl.Shader = shader
	}
	return e
}

// Bounds returns the world-space box of an instance, ignoring rotation.
func (m *Models) Bounds(ref string, position [3]float32, scale float32) rl.BoundingBox {
	b := m.get(ref).bounds
	pos := rl.NewVector3(position[0], position[1], position[2])
	return rl.NewBoundingBox(
		rl.Vector3Add(pos, rl.Vector3Scale(b.Min, scale)),
		rl.Vector3Add(pos, rl.Vector3Scale(b.Max, scale)),
	)
}

// Draw draws ref with its base at position, turned yaw radians about Y and uniformly
// scaled. Must be called between BeginMode3D and EndMode3D.
func (m *Models) Draw(ref string, position [3]float32, yaw, scale float32, tint rl.Color) {
	e := m.get(ref)
	if scale == 0 {
		scale = 1
	}
	if !e.fallback {
		rl.DrawModelEx(e.model, rl.NewVector3(position[0], position[1], position[2]),
			rl.NewVector3(0, 1, 0), yaw*rl.Rad2deg, rl.NewVector3(scale, scale, scale), tint)
		return
	}
	if albedo := e.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	m.setLitUniforms(e.mtl.Shader)
	// The generated cube is centered; lift it so its base sits on position.
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixTranslate(0, 0.5, 0), rl.MatrixScale(scale, scale, scale)),
		rl.MatrixMultiply(rl.MatrixRotateY(yaw), rl.MatrixTranslate(position[0], position[1], position[2])),
	)
	rl.DrawMesh(e.mesh, e.mtl, transform)
}

// Unload releases every cached GPU resource.
func (m *Models) Unload() {
	for ref, e := range m.cache {
		if e.fallback {
			rl.UnloadMesh(&e.mesh)
			rl.UnloadMaterial(e.mtl)
		} else {
			rl.UnloadModel(e.model)
		}
		delete(m.cache, ref)
	}
}

var (
	ambient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

func (m *Models) setLitUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := m.viewPos
	lightDir := m.lightDir
	amb := ambient
	lc := lightColor
	vec := map[string][]float32{
		"viewPos":    viewPos[:],
		"lightDir":   lightDir[:],
		"lightColor": lc[:],
	}
	for name, v := range vec {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	scalars := map[string]float32{
		"lightIntensity":   lightIntensity,
		"specularPower":    specularPower,
		"specularStrength": specularStrength,
	}
	for name, v := range scalars {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

// Directional light plus ambient, with a Blinn-Phong highlight.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)
