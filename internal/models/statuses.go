package models

type UserStatus string
type UserRole string
type RFQStatus string
type BidStatus string
type Recommendation string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleBuyer    UserRole = "buyer"
	UserRoleSupplier UserRole = "supplier"
	UserRoleAdmin    UserRole = "admin"

	RFQStatusDraft     RFQStatus = "draft"
	RFQStatusOpen      RFQStatus = "open"
	RFQStatusClosed    RFQStatus = "closed"
	RFQStatusAwarded   RFQStatus = "awarded"
	RFQStatusCancelled RFQStatus = "cancelled"

	BidStatusSubmitted BidStatus = "submitted"
	BidStatusWithdrawn BidStatus = "withdrawn"
	BidStatusEvaluated BidStatus = "evaluated"

	RecommendationAward     Recommendation = "Award"
	RecommendationShortlist Recommendation = "Shortlist"
	RecommendationReject    Recommendation = "Reject"
)
