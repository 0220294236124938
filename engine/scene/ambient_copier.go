package scene

// AmbientCopier propagates ambient lighting from one scene to another. A portal that looks into a
// different scene renders with the exit scene's lighting, so the render agent copies it into a
// private snapshot when the exit scene is assigned.
type AmbientCopier interface {
	// CopyAmbientSettings copies from's ambient settings into to.
	//
	// Parameters:
	//   - from: the scene to read
	//   - to: the scene to overwrite
	CopyAmbientSettings(from, to Scene)
}

// AmbientCopierFunc adapts a plain function to the AmbientCopier interface.
type AmbientCopierFunc func(from, to Scene)

// CopyAmbientSettings calls f(from, to).
func (f AmbientCopierFunc) CopyAmbientSettings(from, to Scene) {
	f(from, to)
}

type ambientCopier struct{}

var _ AmbientCopier = ambientCopier{}

// NewAmbientCopier returns the default copier, which overwrites every ambient field. Nil scenes
// are ignored.
//
// Returns:
//   - AmbientCopier: the default copier
func NewAmbientCopier() AmbientCopier {
	return ambientCopier{}
}

func (ambientCopier) CopyAmbientSettings(from, to Scene) {
	if from == nil || to == nil {
		return
	}
	to.SetAmbient(from.Ambient())
}
