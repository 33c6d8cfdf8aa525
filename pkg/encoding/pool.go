package encoding

import (
	"bytes"
	"encoding/xml"
	"sync"
)

// BufferPool pools bytes.Buffer for XML encoding.
// Every gateway request is rendered through it.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a bytes.Buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset() // Ensure buffer is empty
	return buf
}

// PutBuffer returns a bytes.Buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	// Don't pool buffers that grew too large (>64KB)
	if buf.Cap() > 64*1024 {
		return
	}
	buf.Reset()
	BufferPool.Put(buf)
}

// EncodeXMLDocument renders v as a standalone UTF-8 XML document:
// the <?xml?> declaration, the tab-indented element tree and a trailing newline.
// Character data and attribute values are escaped by encoding/xml.
func EncodeXMLDocument(v interface{}) (string, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "\t")
	if err := encoder.Encode(v); err != nil {
		return "", err
	}
	buf.WriteByte('\n')

	// String copies, so the buffer can go back to the pool
	return buf.String(), nil
}
