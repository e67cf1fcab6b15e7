package ikos

// Resolvers project a Response onto the part a caller actually wants. They
// are typically applied straight to the result of a service call:
//
//	resp, err := groups.GetAll(ctx)
//	if err != nil {
//		return err
//	}
//	data, err := ikos.ResolveWithDataOrArray(resp)

// ResolveWithData returns the envelope's data value unchanged.
func ResolveWithData(r Response) (any, error) {
	if len(r) == 0 {
		return nil, &Error{
			Op:  "ResolveWithData",
			Err: ErrEmptyResponse,
			Msg: "Api Response is empty, cannot read data.",
		}
	}

	data, ok := r["data"]
	if !ok {
		return nil, &Error{
			Op:  "ResolveWithData",
			Err: ErrMissingField,
			Msg: "Api Response does not contain a data object.",
		}
	}
	return data, nil
}

// ResolveWithDataID returns the "_id" of the envelope's data object.
func ResolveWithDataID(r Response) (any, error) {
	if len(r) == 0 {
		return nil, &Error{
			Op:  "ResolveWithDataID",
			Err: ErrEmptyResponse,
			Msg: "Api Response is empty, cannot read data.",
		}
	}

	data, ok := r["data"]
	if !ok {
		return nil, &Error{
			Op:  "ResolveWithDataID",
			Err: ErrMissingField,
			Msg: "Api Response does not contain a data object.",
		}
	}

	var obj map[string]any
	switch d := data.(type) {
	case map[string]any:
		obj = d
	case Object:
		obj = d
	}
	id, ok := obj["_id"]
	if !ok {
		return nil, &Error{
			Op:  "ResolveWithDataID",
			Err: ErrMissingIdentifier,
			Msg: "Data object does not contain an ID.",
		}
	}
	return id, nil
}

// ResolveWithDataOrArray returns data, or an empty slice when the envelope
// has no data key.
func ResolveWithDataOrArray(r Response) (any, error) {
	if len(r) == 0 {
		return nil, &Error{
			Op:  "ResolveWithDataOrArray",
			Err: ErrEmptyResponse,
			Msg: "Api Response is empty, cannot parse.",
		}
	}

	data, ok := r["data"]
	if !ok {
		return []any{}, nil
	}
	return data, nil
}

// ResolveWithDataOrObject returns data, or an empty map when the envelope
// has no data key.
func ResolveWithDataOrObject(r Response) (any, error) {
	if len(r) == 0 {
		return nil, &Error{
			Op:  "ResolveWithDataOrObject",
			Err: ErrEmptyResponse,
			Msg: "Api Response is empty, cannot parse.",
		}
	}

	data, ok := r["data"]
	if !ok {
		return map[string]any{}, nil
	}
	return data, nil
}

// ResolveWithResponseMeta returns the "response" value verbatim.
//
// Unlike the data resolvers it does not check that the key exists; a
// missing key resolves to nil.
func ResolveWithResponseMeta(r Response) (any, error) {
	if len(r) == 0 {
		return nil, &Error{
			Op:  "ResolveWithResponseMeta",
			Err: ErrEmptyResponse,
			Msg: `Api Response is empty, cannot read "response".`,
		}
	}
	return r["response"], nil
}
