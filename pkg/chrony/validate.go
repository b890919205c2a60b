package chrony

import (
	"math"
	"strconv"
)

// Validators reject structurally impossible values before a record reaches
// the caller. They stop at the first violation. Every float field must be
// finite; a subset must additionally be non-negative (a value can be finite
// and still policy-invalid). Signed fields such as offsets and frequencies
// only get the finiteness check, since a clock running fast is as valid as
// one running slow. Enumerated fields are not range-checked here: unknown
// wire values were already rejected during extraction.

func validateFinite(value float64, field string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return newError(KindData, "invalid "+field+": "+formatFloat(value))
	}
	return nil
}

func validateNonNegativeFloat(value float64, field string) error {
	if value < 0 {
		return newError(KindData, field+" must be non-negative: "+formatFloat(value))
	}
	return nil
}

func validateBoundedInt(value int, field string, min, max int) error {
	if value < min || value > max {
		return newError(KindData, "invalid "+field+": "+strconv.Itoa(value))
	}
	return nil
}

func validateNonNegativeInt(value int64, field string) error {
	if value < 0 {
		return newError(KindData, field+" must be non-negative: "+strconv.FormatInt(value, 10))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func validateTracking(t *TrackingStatus) error {
	if err := validateBoundedInt(t.Stratum, "stratum", 0, 15); err != nil {
		return err
	}

	finite := []struct {
		value float64
		field string
	}{
		{t.RefTime, "ref_time"},
		{t.Offset, "offset"},
		{t.LastOffset, "last_offset"},
		{t.RMSOffset, "rms_offset"},
		{t.Frequency, "frequency"},
		{t.ResidualFreq, "residual_freq"},
		{t.Skew, "skew"},
		{t.RootDelay, "root_delay"},
		{t.RootDispersion, "root_dispersion"},
		{t.UpdateInterval, "update_interval"},
	}
	for _, f := range finite {
		if err := validateFinite(f.value, f.field); err != nil {
			return err
		}
	}

	nonNegative := []struct {
		value float64
		field string
	}{
		{t.RefTime, "ref_time"},
		{t.RMSOffset, "rms_offset"},
		{t.Skew, "skew"},
		{t.RootDelay, "root_delay"},
		{t.RootDispersion, "root_dispersion"},
		{t.UpdateInterval, "update_interval"},
	}
	for _, f := range nonNegative {
		if err := validateNonNegativeFloat(f.value, f.field); err != nil {
			return err
		}
	}
	return nil
}

func validateSource(s *Source) error {
	if err := validateBoundedInt(s.Stratum, "stratum", 0, 15); err != nil {
		return err
	}
	if err := validateBoundedInt(s.Reachability, "reachability", 0, 255); err != nil {
		return err
	}
	if err := validateNonNegativeInt(s.LastSampleAgo, "last_sample_ago"); err != nil {
		return err
	}

	finite := []struct {
		value float64
		field string
	}{
		{s.OrigLatestMeas, "orig_latest_meas"},
		{s.LatestMeas, "latest_meas"},
		{s.LatestMeasErr, "latest_meas_err"},
	}
	for _, f := range finite {
		if err := validateFinite(f.value, f.field); err != nil {
			return err
		}
	}

	return validateNonNegativeFloat(s.LatestMeasErr, "latest_meas_err")
}

func validateSourceStats(s *SourceStats) error {
	counts := []struct {
		value int64
		field string
	}{
		{s.Samples, "samples"},
		{s.Runs, "runs"},
		{s.Span, "span"},
	}
	for _, c := range counts {
		if err := validateNonNegativeInt(c.value, c.field); err != nil {
			return err
		}
	}

	finite := []struct {
		value float64
		field string
	}{
		{s.StdDev, "std_dev"},
		{s.ResidFreq, "resid_freq"},
		{s.Skew, "skew"},
		{s.Offset, "offset"},
		{s.OffsetErr, "offset_err"},
	}
	for _, f := range finite {
		if err := validateFinite(f.value, f.field); err != nil {
			return err
		}
	}

	nonNegative := []struct {
		value float64
		field string
	}{
		{s.StdDev, "std_dev"},
		{s.Skew, "skew"},
		{s.OffsetErr, "offset_err"},
	}
	for _, f := range nonNegative {
		if err := validateNonNegativeFloat(f.value, f.field); err != nil {
			return err
		}
	}
	return nil
}

func validateRTC(d *RTCData) error {
	counts := []struct {
		value int64
		field string
	}{
		{d.Samples, "samples"},
		{d.Runs, "runs"},
		{d.Span, "span"},
	}
	for _, c := range counts {
		if err := validateNonNegativeInt(c.value, c.field); err != nil {
			return err
		}
	}

	finite := []struct {
		value float64
		field string
	}{
		{d.RefTime, "ref_time"},
		{d.Offset, "offset"},
		{d.FreqOffset, "freq_offset"},
	}
	for _, f := range finite {
		if err := validateFinite(f.value, f.field); err != nil {
			return err
		}
	}

	return validateNonNegativeFloat(d.RefTime, "ref_time")
}
