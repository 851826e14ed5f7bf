package trackgen

import (
	"bytes"
	"sync"
)

var sourceBufPool = &sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 16384))
	},
}

func releaseSourceBuf(buf *bytes.Buffer) {
	buf.Reset()
	sourceBufPool.Put(buf)
}
