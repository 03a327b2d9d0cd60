package wasm

// Binary format constants (WebAssembly core, version 1).
const (
	sectionType     byte = 0x01
	sectionFunction byte = 0x03
	sectionExport   byte = 0x07
	sectionCode     byte = 0x0a

	funcTypeTag    byte = 0x60
	valTypeI64     byte = 0x7e
	exportKindFunc byte = 0x00

	opEnd      byte = 0x0b
	opLocalGet byte = 0x20
	opI64Const byte = 0x42
	opI64Add   byte = 0x7c
	opI64Sub   byte = 0x7d
)

// moduleHeader is the magic number followed by version 1.
var moduleHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func appendUleb128(b []byte, v uint64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

func appendSleb128(b []byte, v int64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}

func appendName(b []byte, name string) []byte {
	b = appendUleb128(b, uint64(len(name)))
	return append(b, name...)
}

func appendSection(b []byte, id byte, payload []byte) []byte {
	b = append(b, id)
	b = appendUleb128(b, uint64(len(payload)))
	return append(b, payload...)
}

// encodeModule assembles a module with a single exported function taking
// nparams i64 values and returning one i64. code is the instruction sequence
// without the trailing end opcode.
func encodeModule(export string, nparams int, code []byte) []byte {
	var typ []byte
	typ = appendUleb128(typ, 1)
	typ = append(typ, funcTypeTag)
	typ = appendUleb128(typ, uint64(nparams))
	for j := 0; j < nparams; j++ {
		typ = append(typ, valTypeI64)
	}
	typ = appendUleb128(typ, 1)
	typ = append(typ, valTypeI64)

	var fn []byte
	fn = appendUleb128(fn, 1)
	fn = appendUleb128(fn, 0)

	var exp []byte
	exp = appendUleb128(exp, 1)
	exp = appendName(exp, export)
	exp = append(exp, exportKindFunc)
	exp = appendUleb128(exp, 0)

	body := make([]byte, 0, len(code)+2)
	body = appendUleb128(body, 0) // no locals beyond the parameters
	body = append(body, code...)
	body = append(body, opEnd)

	var cs []byte
	cs = appendUleb128(cs, 1)
	cs = appendUleb128(cs, uint64(len(body)))
	cs = append(cs, body...)

	out := append([]byte(nil), moduleHeader...)
	out = appendSection(out, sectionType, typ)
	out = appendSection(out, sectionFunction, fn)
	out = appendSection(out, sectionExport, exp)
	out = appendSection(out, sectionCode, cs)
	return out
}
