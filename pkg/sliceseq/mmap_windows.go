//go:build windows

package sliceseq

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsMapping keeps the handles alive for the lifetime of the mapping;
// mmapRegion.data aliases the mapped view.
type windowsMapping struct {
	mapHandle windows.Handle
	addr      uintptr
}

var windowsMappings = map[*mmapRegion]*windowsMapping{}

// mmapOpen maps the first n bytes of fd read-only.
func mmapOpen(fd int, n int) (*mmapRegion, error) {
	h := windows.Handle(fd)

	mapHandle, err := windows.CreateFileMapping(h, nil, windows.PAGE_READONLY,
		uint32(uint64(n)>>32), uint32(uint64(n)&0xFFFFFFFF), nil)
	if err != nil {
		return nil, err
	}

	addr, err := windows.MapViewOfFile(mapHandle, windows.FILE_MAP_READ, 0, 0, uintptr(n))
	if err != nil {
		windows.CloseHandle(mapHandle)
		return nil, err
	}

	var data []byte
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Data = addr
	header.Len = n
	header.Cap = n

	region := &mmapRegion{data: data}
	windowsMappings[region] = &windowsMapping{mapHandle: mapHandle, addr: addr}
	return region, nil
}

func (m *mmapRegion) close() error {
	if m.data == nil {
		return nil
	}
	wm, ok := windowsMappings[m]
	m.data = nil
	if !ok {
		return nil
	}
	delete(windowsMappings, m)
	if err := windows.UnmapViewOfFile(wm.addr); err != nil {
		return err
	}
	return windows.CloseHandle(wm.mapHandle)
}
