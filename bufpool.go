package cbor

import "sync"

const chunkSize = 32 * 1024

// skipPool reuses scratch buffers for Reader.Skip so that discarding large
// byte strings does not allocate per call.
var skipPool = sync.Pool{
	New: func() any {
		b := make([]byte, chunkSize)
		return &b
	},
}
