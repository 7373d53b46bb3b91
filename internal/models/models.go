package models

import "time"

type DisasterStatus string

const (
	DisasterActive          DisasterStatus = "Active"
	DisasterResponseOngoing DisasterStatus = "Response Ongoing"
	DisasterFundsDeploying  DisasterStatus = "Funds Deploying"
	DisasterCompleted       DisasterStatus = "Completed"
	DisasterArchived        DisasterStatus = "Archived"
)

// disasterRank orders the disaster lifecycle. Status only ever advances;
// Archived is terminal.
var disasterRank = map[DisasterStatus]int{
	DisasterActive:          0,
	DisasterResponseOngoing: 1,
	DisasterFundsDeploying:  2,
	DisasterCompleted:       3,
	DisasterArchived:        4,
}

func (s DisasterStatus) Valid() bool {
	_, ok := disasterRank[s]
	return ok
}

// CanAdvanceTo reports whether a disaster may move from s to next.
func (s DisasterStatus) CanAdvanceTo(next DisasterStatus) bool {
	a, ok := disasterRank[s]
	b, ok2 := disasterRank[next]
	if !ok || !ok2 {
		return false
	}
	return s != DisasterArchived && b > a
}

type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "Pending"
	ProposalApproved  ProposalStatus = "Approved"
	ProposalRejected  ProposalStatus = "Rejected"
	ProposalCompleted ProposalStatus = "Completed"
)

type Category string

const (
	CategoryFood      Category = "Food"
	CategoryMedical   Category = "Medical"
	CategoryShelter   Category = "Shelter"
	CategoryTransport Category = "Transport"
	CategoryOther     Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryMedical, CategoryShelter, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

type Role string

const (
	RoleDonor     Role = "Donor"
	RoleResponder Role = "Responder"
	RoleValidator Role = "Validator"
	RoleAdmin     Role = "Admin"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "Pending"
	DonationConfirmed DonationStatus = "Confirmed"
	DonationFailed    DonationStatus = "Failed"
)

type Disaster struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Status             DisasterStatus `json:"status"`
	Type               string         `json:"type"`
	Impact             string         `json:"impact"`
	AlertLevel         int            `json:"alert_level"`
	Affected           int            `json:"affected"`
	FundsNeeded        int64          `json:"funds_needed"`
	FundsRaised        int64          `json:"funds_raised"`
	FundsDeployed      int64          `json:"funds_deployed"`
	Proposals          []string       `json:"proposals"`
	ProposalsFunded    int            `json:"proposals_funded"`
	VerifiedDeliveries int            `json:"verified_deliveries"`
	DateStarted        time.Time      `json:"date_started"`
}

type Proposal struct {
	ID               string         `json:"id"`
	DisasterID       string         `json:"disaster_id"`
	Title            string         `json:"title"`
	Category         Category       `json:"category"`
	AmountRequested  int64          `json:"amount_requested"`
	Status           ProposalStatus `json:"status"`
	Timeline         string         `json:"timeline"`
	VotesYes         int            `json:"votes_yes"`
	VotesNo          int            `json:"votes_no"`
	CreatedBy        string         `json:"created_by"`
	Description      string         `json:"description"`
	Beneficiaries    int            `json:"beneficiaries"`
	Location         string         `json:"location"`
	VerificationPlan []string       `json:"verification_plan"`
	VerificationRef  string         `json:"verification_ref,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	ProposalID  string    `json:"proposal_id"`
	VoterID     string    `json:"voter_id"`
	Decision    bool      `json:"decision"`
	TxSignature string    `json:"tx_signature,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Reputation   int       `json:"reputation"`
	Activity     string    `json:"activity,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Donation struct {
	ID          string         `json:"id"`
	DisasterID  string         `json:"disaster_id"`
	DonorID     string         `json:"donor_id"`
	Amount      int64          `json:"amount"`
	Type        string         `json:"type"`
	Status      DonationStatus `json:"status"`
	TxSignature string         `json:"tx_signature,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
