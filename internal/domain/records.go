// Package domain defines the immutable record types the attribution
// engine consumes — leads, opportunities and touchpoints — plus the
// closed enumerations and constant tables that parameterize the
// weighting models in package primitives and factors.
package domain

import "time"

// Lead is a known individual within an account.
type Lead struct {
	LeadID             string      `json:"lead_id"`
	AccountID          string      `json:"account_id"`
	LeadScore          int         `json:"lead_score"`
	DemographicScore   int         `json:"demographic_score"`
	BehavioralScore    int         `json:"behavioral_score"`
	FirmographicScore  int         `json:"firmographic_score"`
	QualityTier        QualityTier `json:"quality_tier"`
	CreatedDate        time.Time   `json:"created_date"`
	Stage              Stage       `json:"stage"`
	Source             string      `json:"source"`
}

// Opportunity is a won deal tied to an account, with one or more leads.
type Opportunity struct {
	OpportunityID        string       `json:"opportunity_id"`
	AccountID            string       `json:"account_id"`
	LeadIDs              []string     `json:"lead_ids"`
	Amount               float64      `json:"amount"`
	CreatedDate          time.Time    `json:"created_date"`
	CloseDate            *time.Time   `json:"close_date,omitempty"`
	SalesCycleDays       int          `json:"sales_cycle_days"`
	DealSizeTier         DealSizeTier `json:"deal_size_tier"`
	DecisionMakersCount  int          `json:"decision_makers_count"`
	InfluencersCount     int          `json:"influencers_count"`
}

// ConversionDate returns CloseDate if present, else CreatedDate — the
// instant every time-based factor treats as the moment of conversion.
func (o Opportunity) ConversionDate() time.Time {
	if o.CloseDate != nil {
		return *o.CloseDate
	}
	return o.CreatedDate
}

// EffectiveSalesCycleDays returns SalesCycleDays, defaulting to 180 when
// absent (zero or negative), per the data-model default in spec §3.
func (o Opportunity) EffectiveSalesCycleDays() int {
	if o.SalesCycleDays <= 0 {
		return 180
	}
	return o.SalesCycleDays
}

// CommitteeSize is the combined count of decision makers and influencers.
func (o Opportunity) CommitteeSize() int {
	return o.DecisionMakersCount + o.InfluencersCount
}

// Touchpoint is a single interaction belonging to a lead and an account.
type Touchpoint struct {
	TouchpointID      string         `json:"touchpoint_id"`
	LeadID            string         `json:"lead_id"`
	AccountID         string         `json:"account_id"`
	Timestamp         time.Time      `json:"timestamp"`
	TouchpointType    TouchpointType `json:"touchpoint_type"`
	Channel           string         `json:"channel"`
	EngagementScore   float64        `json:"engagement_score"`
	StageInfluence    Stage          `json:"stage_influence"`
	Cost              float64        `json:"cost"`
	IsSalesTouch      bool           `json:"is_sales_touch"`
	IsMarketingTouch  bool           `json:"is_marketing_touch"`
	CampaignID        string         `json:"campaign_id,omitempty"`
	ContentID         string         `json:"content_id,omitempty"`
	SalesRepID        string         `json:"sales_rep_id,omitempty"`
}

// IsJoint reports whether the touchpoint carries both sales and
// marketing flags.
func (t Touchpoint) IsJoint() bool {
	return t.IsSalesTouch && t.IsMarketingTouch
}
