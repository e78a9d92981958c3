//go:build !linux

package dmabuf

type unsupportedMapper struct{}

// NewMapper returns a Mapper that always fails.
func NewMapper() Mapper {
	return unsupportedMapper{}
}

func (unsupportedMapper) Map(fd int, offset int64, size int) (*Mapping, error) {
	return nil, ErrUnsupported
}
