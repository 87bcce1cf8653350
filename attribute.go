package glkit

import (
	"github.com/gogpu/gputypes"
)

// floatFormats maps a component count to its float vertex format.
var floatFormats = [...]gputypes.VertexFormat{
	1: gputypes.VertexFormatFloat32,
	2: gputypes.VertexFormatFloat32x2,
	3: gputypes.VertexFormatFloat32x3,
	4: gputypes.VertexFormatFloat32x4,
}

// FloatFormat returns the float vertex format with size components.
// It reports false for sizes outside 1..4.
func FloatFormat(size int) (gputypes.VertexFormat, bool) {
	if size < 1 || size >= len(floatFormats) {
		return gputypes.VertexFormatUndefined, false
	}
	return floatFormats[size], true
}

// FormatComponents returns the component count of a float vertex format,
// or 0 if f is not one of Float32..Float32x4.
func FormatComponents(f gputypes.VertexFormat) int {
	for size := 1; size < len(floatFormats); size++ {
		if floatFormats[size] == f {
			return size
		}
	}
	return 0
}

// AttributeBuffer is a GPU buffer owned by the caller of SetAttribute.
type AttributeBuffer struct {
	host   Host
	id     BufferID
	index  int
	format gputypes.VertexFormat
}

// ID returns the host buffer handle, or 0 after Release.
func (b *AttributeBuffer) ID() BufferID { return b.id }

// Index returns the attribute index the buffer is bound to.
func (b *AttributeBuffer) Index() int { return b.index }

// Format returns the vertex format of the attribute.
func (b *AttributeBuffer) Format() gputypes.VertexFormat { return b.format }

// Release deletes the GPU buffer. Release is idempotent.
func (b *AttributeBuffer) Release() {
	if b == nil || b.id == 0 {
		return
	}
	b.host.DeleteBuffer(b.id)
	Logger().Debug("glkit: attribute buffer released", "buffer", uint32(b.id))
	b.id = 0
}

// SetAttribute uploads data into a new buffer and binds it to the vertex
// attribute name of p, with size float components per vertex.
//
// Every call allocates a fresh buffer with static usage; the layout is
// tightly packed (stride 0, offset 0). Index 0 is a valid attribute index;
// only a negative index means the attribute is absent, in which case the
// new buffer is released and an *AttributeNotFoundError is returned.
//
// The caller owns the returned buffer and should Release it when the
// attribute data is no longer needed.
func SetAttribute(h Host, p Program, name string, data []float32, size int) (*AttributeBuffer, error) {
	format, ok := FloatFormat(size)
	if !ok {
		return nil, &AttributeSizeError{Size: size}
	}

	id := h.CreateBuffer()
	if id == 0 {
		return nil, ErrBufferCreate
	}
	buf := &AttributeBuffer{host: h, id: id, index: -1, format: format}

	h.BindBuffer(ArrayBuffer, id)
	h.BufferData(ArrayBuffer, data, StaticDraw)

	index := h.AttribLocation(p, name)
	if index < 0 {
		buf.Release()
		return nil, &AttributeNotFoundError{Name: name}
	}
	h.VertexAttribPointer(index, format, false, 0, 0)
	h.EnableVertexAttribArray(index)
	buf.index = index

	Logger().Debug("glkit: attribute bound",
		"name", name, "index", index, "format", format.String(), "floats", len(data))
	return buf, nil
}
