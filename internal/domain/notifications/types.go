package notifications

type Type string

const (
	TypeAdoptionStatus      Type = "ADOPTION_STATUS"
	TypeApplicationReceived Type = "APPLICATION_RECEIVED"
	TypeVerificationStatus  Type = "VERIFICATION_STATUS"
	TypeRatingReceived      Type = "RATING_RECEIVED"
	TypeApplicationViewed   Type = "APPLICATION_VIEWED"
)

func validType(t Type) bool {
	switch t {
	case TypeAdoptionStatus, TypeApplicationReceived, TypeVerificationStatus,
		TypeRatingReceived, TypeApplicationViewed:
		return true
	default:
		return false
	}
}
