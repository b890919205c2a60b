package chrony

import "strconv"

// Report names understood by the daemon. These are wire-level strings and
// must be spelled exactly as the daemon expects them.
const (
	reportTracking    = "tracking"
	reportSources     = "sources"
	reportSourceStats = "sourcestats"
	reportRTCData     = "rtcdata"
)

// reportRecordCount runs the count-discovery phase of the record protocol:
// request the record count for a report, drain however many responses the
// session needs, then read the count. A zero or negative count is returned
// as-is; its meaning (empty result, fatal, or feature-not-configured) is
// per-report and decided by the caller.
func reportRecordCount(sess Session, report string) (int, error) {
	if status := sess.RequestReportNumberRecords(report); status != 0 {
		return 0, newErrorCode(KindData, "failed to request "+report+" report", status)
	}
	if err := drainResponses(sess, "failed to process "+report+" response"); err != nil {
		return 0, err
	}
	return sess.ReportNumberRecords(), nil
}

// fetchRecord runs the per-record phase: request one record by index and
// drain the responses. On return the session is positioned so the field
// table of that record can be read.
func fetchRecord(sess Session, report string, index int) error {
	if status := sess.RequestRecord(report, index); status != 0 {
		return newErrorCode(KindData,
			"failed to request "+report+" record "+strconv.Itoa(index), status)
	}
	return drainResponses(sess, "failed to process "+report+" record "+strconv.Itoa(index))
}

// drainResponses consumes responses until the session stops asking for
// more. A single request may require several response chunks; any non-zero
// status mid-drain aborts the query.
func drainResponses(sess Session, failMsg string) error {
	for sess.NeedsResponse() {
		if status := sess.ProcessResponse(); status != 0 {
			return newErrorCode(KindData, failMsg, status)
		}
	}
	return nil
}
