package domain

// Stage is a B2B sales funnel stage, ordered but not numeric.
type Stage string

const (
	StageAwareness     Stage = "awareness"
	StageInterest      Stage = "interest"
	StageConsideration Stage = "consideration"
	StageIntent        Stage = "intent"
	StageEvaluation    Stage = "evaluation"
	StagePurchase      Stage = "purchase"
)

// Valid reports whether s is one of the closed stage values.
func (s Stage) Valid() bool {
	switch s {
	case StageAwareness, StageInterest, StageConsideration, StageIntent, StageEvaluation, StagePurchase:
		return true
	}
	return false
}

// TouchpointType is the closed set of B2B touchpoint interaction kinds.
type TouchpointType string

const (
	TypeContentDownload    TouchpointType = "content_download"
	TypeWebinarAttendance  TouchpointType = "webinar_attendance"
	TypeDemoRequest        TouchpointType = "demo_request"
	TypeTradeShow          TouchpointType = "trade_show"
	TypeSalesCall          TouchpointType = "sales_call"
	TypeEmailEngagement    TouchpointType = "email_engagement"
	TypeWebsiteVisit       TouchpointType = "website_visit"
	TypeSocialEngagement   TouchpointType = "social_engagement"
	TypeDirectMail         TouchpointType = "direct_mail"
	TypeReferral           TouchpointType = "referral"
)

// Valid reports whether t is one of the closed touchpoint-type values.
func (t TouchpointType) Valid() bool {
	switch t {
	case TypeContentDownload, TypeWebinarAttendance, TypeDemoRequest, TypeTradeShow,
		TypeSalesCall, TypeEmailEngagement, TypeWebsiteVisit, TypeSocialEngagement,
		TypeDirectMail, TypeReferral:
		return true
	}
	return false
}

// QualityTier is the closed set of derived lead-quality tiers.
type QualityTier string

const (
	TierA QualityTier = "A"
	TierB QualityTier = "B"
	TierC QualityTier = "C"
	TierD QualityTier = "D"
)

// DerivedQualityTier returns the tier a lead_score maps to at ingestion time.
// The engine never calls this on its own inputs — the lead's QualityTier
// field is authoritative and re-derivation is disallowed (see DESIGN.md).
func DerivedQualityTier(leadScore int) QualityTier {
	switch {
	case leadScore >= 80:
		return TierA
	case leadScore >= 60:
		return TierB
	case leadScore >= 40:
		return TierC
	default:
		return TierD
	}
}

// DealSizeTier is the closed set of deal-size classifications.
type DealSizeTier string

const (
	TierEnterprise DealSizeTier = "enterprise"
	TierMidMarket  DealSizeTier = "mid-market"
	TierSMB        DealSizeTier = "smb"
)
