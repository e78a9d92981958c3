//go:build !linux

package dmabuf

type unsupportedCloser struct{}

func (unsupportedCloser) Close(fd int) error {
	return ErrUnsupported
}

func defaultCloser() HandleCloser {
	return unsupportedCloser{}
}
