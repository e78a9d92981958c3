package dmabuf

//go:generate mockgen -source $GOFILE -destination interfaces_mocks.go -package $GOPACKAGE

// GPUContext makes the compositor's GL context current on the calling thread.
type GPUContext interface {
	MakeCurrent()
}

// Image is a zero-copy imported buffer (an EGLImage bound to a texture).
type Image interface {
	TextureID() uint32
	Target() uint32
	// Release destroys the texture and the image behind it.
	Release()
}

// ImageImporter performs the zero-copy import. It must tolerate being called
// again with a modified descriptor after a failure.
type ImageImporter interface {
	Import(attrs Attrs) (Image, error)
}

// SecondaryDevice reports whether a secondary render device is usable for
// cross-GPU buffers.
type SecondaryDevice interface {
	Available() bool
}

// ClientResource is the protocol object representing the buffer to the client.
type ClientResource interface {
	// SendRelease tells the client the compositor is done with the buffer.
	SendRelease()
	// OnDestroy registers fn to run when the client destroys the resource
	// and returns a function removing the registration.
	OnDestroy(fn func()) (remove func())
}
