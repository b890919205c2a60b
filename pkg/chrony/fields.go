package chrony

// fieldReader reads typed fields out of the session's current record,
// latching the first failure so extractors can stay linear instead of
// checking an error after every field. Field names are an external
// contract: they must match the daemon's report schema byte for byte,
// case included, or the lookup fails.
type fieldReader struct {
	sess Session
	err  error
}

func (r *fieldReader) index(name string) (int, bool) {
	if r.err != nil {
		return 0, false
	}
	idx := r.sess.FieldIndex(name)
	if idx < 0 {
		r.err = newError(KindData, "field '"+name+"' not found (libchrony version mismatch?)")
		return 0, false
	}
	return idx, true
}

func (r *fieldReader) float(name string) float64 {
	idx, ok := r.index(name)
	if !ok {
		return 0
	}
	return r.sess.FieldFloat(idx)
}

func (r *fieldReader) uinteger(name string) uint64 {
	idx, ok := r.index(name)
	if !ok {
		return 0
	}
	return r.sess.FieldUinteger(idx)
}

func (r *fieldReader) integer(name string) int64 {
	idx, ok := r.index(name)
	if !ok {
		return 0
	}
	return r.sess.FieldInteger(idx)
}

// string returns the field as a string. An absent value in the underlying
// table comes back as the empty string, which is not an error; only a
// missing field name is.
func (r *fieldReader) string(name string) string {
	idx, ok := r.index(name)
	if !ok {
		return ""
	}
	return r.sess.FieldString(idx)
}

// timespec returns the field converted to floating point seconds since the
// epoch, sec + nsec/1e9.
func (r *fieldReader) timespec(name string) float64 {
	idx, ok := r.index(name)
	if !ok {
		return 0
	}
	return r.sess.FieldTimespec(idx).Seconds()
}
