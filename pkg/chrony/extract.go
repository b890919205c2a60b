package chrony

// Extractors map the field table of a positioned session onto the report
// structs. Field names are case-sensitive and must match the daemon's
// schema exactly: "reference ID" (capital ID), "RMS offset" (capital RMS),
// "frequency offset" (not "frequency"), "last sample ago", and so on.
// Range and finiteness checks happen afterwards in the validators;
// enumerated values are the exception and are rejected here, at conversion
// time.

func extractTracking(sess Session) (*TrackingStatus, error) {
	r := &fieldReader{sess: sess}

	refID := r.uinteger("reference ID")
	leapRaw := r.uinteger("leap status")
	if r.err != nil {
		return nil, r.err
	}

	leap, err := leapStatusFromWire(leapRaw)
	if err != nil {
		return nil, err
	}

	t := &TrackingStatus{
		ReferenceID:    uint32(refID),
		ReferenceName:  FormatRefID(uint32(refID)),
		ReferenceIP:    r.string("address"),
		Stratum:        int(r.uinteger("stratum")),
		LeapStatus:     leap,
		RefTime:        r.timespec("reference time"),
		Offset:         r.float("current correction"),
		LastOffset:     r.float("last offset"),
		RMSOffset:      r.float("RMS offset"),
		Frequency:      r.float("frequency offset"),
		ResidualFreq:   r.float("residual frequency"),
		Skew:           r.float("skew"),
		RootDelay:      r.float("root delay"),
		RootDispersion: r.float("root dispersion"),
		UpdateInterval: r.float("last update interval"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return t, nil
}

func extractSource(sess Session) (*Source, error) {
	r := &fieldReader{sess: sess}

	// Reference clock entries have no IP address; fall back to the
	// formatted reference ID.
	address := r.string("address")
	if address == "" && r.err == nil {
		address = FormatRefID(uint32(r.uinteger("reference ID")))
	}

	stateRaw := r.uinteger("state")
	modeRaw := r.uinteger("mode")
	if r.err != nil {
		return nil, r.err
	}

	state, err := sourceStateFromWire(stateRaw)
	if err != nil {
		return nil, err
	}
	mode, err := sourceModeFromWire(modeRaw)
	if err != nil {
		return nil, err
	}

	s := &Source{
		Address:        address,
		Poll:           int(r.integer("poll")),
		Stratum:        int(r.uinteger("stratum")),
		State:          state,
		Mode:           mode,
		Flags:          uint32(r.uinteger("flags")),
		Reachability:   int(r.uinteger("reachability")),
		LastSampleAgo:  int64(r.uinteger("last sample ago")),
		OrigLatestMeas: r.float("original last sample offset"),
		LatestMeas:     r.float("adjusted last sample offset"),
		LatestMeasErr:  r.float("last sample error"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

func extractSourceStats(sess Session) (*SourceStats, error) {
	r := &fieldReader{sess: sess}

	s := &SourceStats{
		ReferenceID: uint32(r.uinteger("reference ID")),
		Address:     r.string("address"),
		Samples:     int64(r.uinteger("samples")),
		Runs:        int64(r.uinteger("runs")),
		Span:        int64(r.uinteger("span")),
		StdDev:      r.float("standard deviation"),
		ResidFreq:   r.float("residual frequency"),
		Skew:        r.float("skew"),
		Offset:      r.float("offset"),
		OffsetErr:   r.float("offset error"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

func extractRTC(sess Session) (*RTCData, error) {
	r := &fieldReader{sess: sess}

	d := &RTCData{
		RefTime:    r.timespec("reference time"),
		Samples:    int64(r.uinteger("samples")),
		Runs:       int64(r.uinteger("runs")),
		Span:       int64(r.uinteger("span")),
		Offset:     r.float("offset"),
		FreqOffset: r.float("frequency offset"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return d, nil
}
