package models

// PointSource is the categorical reason-code for a point change
type PointSource string

const (
	PointSourceProfileCompletion  PointSource = "profile_completion"
	PointSourceSubmissionApproved PointSource = "submission_approved"
	PointSourceSubmissionRejected PointSource = "submission_rejected"
	PointSourceEventAttendance    PointSource = "event_attendance"
	PointSourceAdminAdjustment    PointSource = "admin_adjustment"
	PointSourceBonus              PointSource = "bonus"
)

// AllPointSources lists every known source in display order
var AllPointSources = []PointSource{
	PointSourceProfileCompletion,
	PointSourceSubmissionApproved,
	PointSourceSubmissionRejected,
	PointSourceEventAttendance,
	PointSourceAdminAdjustment,
	PointSourceBonus,
}

// IsValid returns true if the source is one of the known sources
func (s PointSource) IsValid() bool {
	for _, known := range AllPointSources {
		if s == known {
			return true
		}
	}
	return false
}

// IsSubmission returns true for both submission outcomes
func (s PointSource) IsSubmission() bool {
	return s == PointSourceSubmissionApproved || s == PointSourceSubmissionRejected
}

// IsManual returns true if the source is entered by an operator
func (s PointSource) IsManual() bool {
	return s == PointSourceAdminAdjustment || s == PointSourceBonus
}

// Description returns a human-readable label for the source
func (s PointSource) Description() string {
	switch s {
	case PointSourceProfileCompletion:
		return "Profile completion"
	case PointSourceSubmissionApproved:
		return "Submission approved"
	case PointSourceSubmissionRejected:
		return "Submission rejected"
	case PointSourceEventAttendance:
		return "Event attendance"
	case PointSourceAdminAdjustment:
		return "Admin adjustment"
	case PointSourceBonus:
		return "Bonus"
	default:
		return string(s)
	}
}

// String returns the string representation of the source
func (s PointSource) String() string {
	return string(s)
}
