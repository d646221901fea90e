package compute

import "reflect"

// FieldLayout describes one field of a uniform struct as it will be laid
// out in a device buffer.
type FieldLayout struct {
	Name   string
	Offset uintptr
	Size   uintptr
}

// StructLayout describes a whole struct's device layout.
type StructLayout struct {
	Size   uintptr
	Fields []FieldLayout
}

// Describe computes the device-buffer layout of a uniform struct from its
// Go field offsets (which reflect.Type.Field already reports relative to
// the start of the struct, so no unsafe arithmetic is needed). The layout
// reported is Go's own, padding included; no WGSL alignment rules are
// applied, so it matches a WGSL struct only where the two layouts agree.
func Describe(v any) StructLayout {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return StructLayout{}
	}

	fields := make([]FieldLayout, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, FieldLayout{
			Name:   f.Name,
			Offset: f.Offset,
			Size:   f.Type.Size(),
		})
	}

	return StructLayout{
		Size:   t.Size(),
		Fields: fields,
	}
}
