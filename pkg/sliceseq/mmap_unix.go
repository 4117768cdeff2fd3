//go:build unix || darwin || linux || freebsd || openbsd || netbsd

package sliceseq

import (
	"golang.org/x/sys/unix"
)

// mmapOpen maps fd read-only, MAP_SHARED, for the first n bytes.
func mmapOpen(fd int, n int) (*mmapRegion, error) {
	data, err := unix.Mmap(fd, 0, n, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &mmapRegion{data: data}, nil
}

// close unmaps the region. Safe to call once; subsequent calls are no-ops.
func (m *mmapRegion) close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
